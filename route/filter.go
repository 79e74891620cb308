// Package route implements the travel-time routing engine: a hierarchical
// shortest-path search over the area/reachability graph a world.World
// exposes, with per-cluster Dijkstra and cross-cluster portal gateways.
package route

// TravelFlag is a capability bit a route query allows or a reachability/
// area requires. The low bits mirror the travel-type table one-for-one;
// the high bits (DONOTENTER, NOTTEAM1/2) are restrictions rather than
// locomotion capabilities.
type TravelFlag uint32

const (
	TFLInvalid TravelFlag = 1 << iota
	TFLWalk
	TFLCrouch
	TFLBarrierJump
	TFLJump
	TFLLadder
	TFLWalkOffLedge
	TFLSwim
	TFLWaterJump
	TFLTeleport
	TFLElevator
	TFLRocketJump
	TFLBFGJump
	TFLGrappleHook
	TFLDoubleJump
	TFLRampJump
	TFLStrafeJump
	TFLJumpPad
	TFLFuncBob
	TFLWater
	TFLSlime
	TFLLava
	TFLAir
	TFLDoNotEnter
	TFLBridge
	TFLNotTeam1
	TFLNotTeam2
)

// DefaultTravelFlags is every locomotion capability bit, excluding the
// restriction bits (DONOTENTER, NOTTEAM1/2) and the content-medium bits,
// which a filter composes in separately.
const DefaultTravelFlags = TFLWalk | TFLCrouch | TFLBarrierJump | TFLJump |
	TFLLadder | TFLWalkOffLedge | TFLSwim | TFLWaterJump | TFLTeleport |
	TFLElevator | TFLRocketJump | TFLBFGJump | TFLGrappleHook | TFLDoubleJump |
	TFLRampJump | TFLStrafeJump | TFLJumpPad | TFLFuncBob

// Filter decides which travel flags a route query allows, mirroring
// detour.QueryFilter.PassFilter but over travel flags instead of polygon
// areas.
type Filter interface {
	// Allowed reports whether flags (a reachability's required capability
	// bits together with any area-contents restriction bits) are acceptable
	// to this filter.
	Allowed(flags TravelFlag) bool
}

// StandardFilter is the default Filter: an include/exclude travel-flag
// bitmask, exactly as StandardQueryFilter carries include/exclude polygon
// flags.
type StandardFilter struct {
	include TravelFlag
	exclude TravelFlag
}

// NewStandardFilter returns a filter that allows every locomotion
// capability and excludes nothing.
func NewStandardFilter() *StandardFilter {
	return &StandardFilter{include: DefaultTravelFlags}
}

// IncludeFlags returns the flags this filter allows.
func (f *StandardFilter) IncludeFlags() TravelFlag { return f.include }

// SetIncludeFlags replaces the allowed flag set.
func (f *StandardFilter) SetIncludeFlags(flags TravelFlag) { f.include = flags }

// ExcludeFlags returns the flags this filter rejects outright.
func (f *StandardFilter) ExcludeFlags() TravelFlag { return f.exclude }

// SetExcludeFlags replaces the rejected flag set.
func (f *StandardFilter) SetExcludeFlags(flags TravelFlag) { f.exclude = flags }

// Allowed reports flags&include != 0 && flags&exclude == 0, the same
// include-then-exclude shape as StandardQueryFilter.PassFilter.
func (f *StandardFilter) Allowed(flags TravelFlag) bool {
	return flags&f.include != 0 && flags&f.exclude == 0
}

// SpeedFactor is the hundredths-of-a-second-per-unit cost of moving in a
// given locomotion mode: CROUCH=1.3, SWIM=1.0, WALK=0.33.
type SpeedFactor float32

const (
	SpeedFactorCrouch SpeedFactor = 1.3
	SpeedFactorSwim   SpeedFactor = 1.0
	SpeedFactorWalk   SpeedFactor = 0.33
)
