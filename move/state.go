// Package move implements the movement state machine: per-bot state, the
// MoveToGoal top-level control flow, and the per-travel-type handler
// table that turns a chosen reachability into elementary actions.
package move

import (
	"fmt"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/aasfile"
	"github.com/noire-dev/aas/world"
)

// Flags is the moveflags bitmask carried on State: transient per-tick
// sensing results plus a few sticky markers a handler sets and a later
// tick clears.
type Flags uint32

const (
	FlagOnGround Flags = 1 << iota
	FlagSwimming
	FlagAgainstLadder
	FlagWaterJump
	FlagTeleported
	FlagWalk
	FlagBarrierJump
)

// ResultFlags annotates a MoveResult with view/posture hints the host uses
// to finish composing a usercmd.
type ResultFlags uint32

const (
	ResultMovementView ResultFlags = 1 << iota
	ResultSwimView
	ResultOnTopOfObstacle
)

// FailureReason names why MoveToGoal could not make progress this tick.
type FailureReason int

const (
	FailureNone FailureReason = iota
	FailureInSolidArea
	FailureNoRoute
	FailureUnknownTravelType
)

// MoveResult is the per-tick outcome of MoveToGoal: whether the attempt
// failed, whether the bot is physically blocked, which travel type just
// ran, and the posture/view hints a handler wants the host to apply.
type MoveResult struct {
	Failure         bool
	FailureReason   FailureReason
	Blocked         bool
	BlockEntity     int32
	TravelType      aasfile.TravelType
	Flags           ResultFlags
	MoveDir         d3.Vec3
	IdealViewAngles [3]float32
	HasViewAngles   bool
}

// State is one bot's mutable movement state between ticks.
type State struct {
	allocated bool

	EntNum    int32
	Client    int32
	ThinkTime float32
	Presence  world.Presence

	Origin     d3.Vec3
	Velocity   d3.Vec3
	ViewOffset d3.Vec3
	ViewAngles [3]float32

	AreaNum         int32
	LastAreaNum     int32
	LastGoalAreaNum int32
	LastReachNum    int32
	LastOrigin      d3.Vec3
	ReachAreaNum    int32

	MoveFlags        Flags
	JumpReach        int32
	ReachabilityTime float64 // world time (seconds) at which the cached reachability expires
}

// Pool is the fixed-size per-bot movement state table: slots are either
// free or allocated, each guarded by an allocated predicate. Unlike
// world.LinkHeap's free-list, there is no reuse ordering to preserve, so a
// flat allocated-bit scan suffices.
type Pool struct {
	states []State
}

// NewPool allocates a movement-state table sized to maxClients.
func NewPool(maxClients int) *Pool {
	return &Pool{states: make([]State, maxClients)}
}

// Alloc claims the first free slot and returns its handle. Exhaustion is a
// capacity error: the caller gets an error, not a panic.
func (p *Pool) Alloc() (int32, error) {
	for i := range p.states {
		if !p.states[i].allocated {
			p.states[i].allocated = true
			return int32(i), nil
		}
	}
	return -1, fmt.Errorf("move: state pool exhausted (capacity %d)", len(p.states))
}

// Init resets handle's state to zero and records its entity/client
// numbers.
func (p *Pool) Init(handle int32, entNum, client int32) *State {
	st := p.mustGet(handle)
	*st = State{allocated: true, EntNum: entNum, Client: client}
	return st
}

// Get returns the state at handle. An out-of-range or unallocated handle
// is a programmer error per the error taxonomy: it panics rather than
// returning a zero value silently.
func (p *Pool) Get(handle int32) *State { return p.mustGet(handle) }

func (p *Pool) mustGet(handle int32) *State {
	if handle < 0 || int(handle) >= len(p.states) {
		panic(fmt.Sprintf("move: handle %d out of range [0,%d)", handle, len(p.states)))
	}
	st := &p.states[handle]
	if !st.allocated {
		panic(fmt.Sprintf("move: handle %d is not allocated", handle))
	}
	return st
}

// Reset clears a state's transient fields back to zero without releasing
// the slot (used e.g. after a map change keeps the bot's client/entity
// numbers but drops cached reachabilities).
func (p *Pool) Reset(handle int32) {
	st := p.mustGet(handle)
	entNum, client := st.EntNum, st.Client
	*st = State{allocated: true, EntNum: entNum, Client: client}
}

// Free releases handle's slot back to the pool.
func (p *Pool) Free(handle int32) {
	st := p.mustGet(handle)
	*st = State{}
}
