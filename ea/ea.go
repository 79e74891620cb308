// Package ea is the elementary-action layer: a per-client intent buffer
// that movement handlers write into and the host drains once per tick.
package ea

import (
	"fmt"

	"github.com/aurelien-rainone/math32"
)

// ActionFlag is one bit of bot_input_t's WSAD/Jump/Crouch/Attack/Use
// intent mask.
type ActionFlag uint32

const (
	ActionMoveForward ActionFlag = 1 << iota
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionJump
	ActionCrouch
	ActionWalk
	ActionAttack
	ActionUse
	ActionTalk
	ActionRespawn
)

// Input is one client's accumulated intent for the current think: the
// WSAD/jump/crouch/attack flags, the desired view angles, and the
// currently selected weapon. ThinkTime is the interval this input covers.
type Input struct {
	ActionFlags ActionFlag
	ViewAngles  [3]float32 // pitch, yaw, roll, degrees
	Weapon      int32
	ThinkTime   float32

	// Speed is the mover's requested ground speed for this tick, alongside
	// the WSAD direction bits Move sets. The movement handlers size it
	// (e.g. the walking handler's gap-distance speed ramp); plain digital
	// WSAD has no magnitude of its own.
	Speed float32
}

// Buffer is the fixed-size table of per-client Input state, indexed by
// client number exactly like world.LinkHeap is indexed by area number: a
// dense array sized at Setup, not a growable map.
type Buffer struct {
	inputs []Input
}

// Setup allocates a buffer for maxClients client slots.
func Setup(maxClients int) *Buffer {
	return &Buffer{inputs: make([]Input, maxClients)}
}

// Shutdown releases the buffer's backing storage.
func (b *Buffer) Shutdown() { b.inputs = nil }

func (b *Buffer) check(client int) error {
	if client < 0 || client >= len(b.inputs) {
		return fmt.Errorf("ea: client %d out of range [0,%d)", client, len(b.inputs))
	}
	return nil
}

// Move projects dir onto client's forward/right basis (derived from the
// yaw component of its current view angles) and sets the corresponding
// WSAD bits. dir need not be normalized; only its sign along each basis
// axis matters. Horizontal projection is computed directly from X/Y
// components rather than through a Y-up helper, since this layer's axes
// are Quake's Z-up convention.
func (b *Buffer) Move(client int, dir [3]float32) error {
	if err := b.check(client); err != nil {
		return err
	}
	in := &b.inputs[client]
	yaw := in.ViewAngles[1] * (math32.Pi / 180)
	forward := [2]float32{math32.Cos(yaw), math32.Sin(yaw)}
	right := [2]float32{-forward[1], forward[0]}

	fdot := dir[0]*forward[0] + dir[1]*forward[1]
	rdot := dir[0]*right[0] + dir[1]*right[1]

	const deadzone = 0.01
	switch {
	case fdot > deadzone:
		in.ActionFlags |= ActionMoveForward
	case fdot < -deadzone:
		in.ActionFlags |= ActionMoveBack
	}
	switch {
	case rdot > deadzone:
		in.ActionFlags |= ActionMoveRight
	case rdot < -deadzone:
		in.ActionFlags |= ActionMoveLeft
	}
	if dir[2] > deadzone {
		in.ActionFlags |= ActionMoveUp
	}
	return nil
}

// SetSpeed records client's requested ground speed for this tick.
func (b *Buffer) SetSpeed(client int, speed float32) error {
	if err := b.check(client); err != nil {
		return err
	}
	b.inputs[client].Speed = speed
	return nil
}

// SetAction ORs flags into client's action mask directly, for intents that
// aren't a movement direction (Jump, Crouch, Attack, Use, ...).
func (b *Buffer) SetAction(client int, flags ActionFlag) error {
	if err := b.check(client); err != nil {
		return err
	}
	b.inputs[client].ActionFlags |= flags
	return nil
}

// View sets client's desired view angles outright (no projection, no
// accumulation: the last call in a tick wins, matching EA_View).
func (b *Buffer) View(client int, angles [3]float32) error {
	if err := b.check(client); err != nil {
		return err
	}
	b.inputs[client].ViewAngles = angles
	return nil
}

// SelectWeapon records client's desired weapon for this tick.
func (b *Buffer) SelectWeapon(client int, weapon int32) error {
	if err := b.check(client); err != nil {
		return err
	}
	b.inputs[client].Weapon = weapon
	return nil
}

// GetInput returns a copy of client's accumulated input, for the host to
// consume when building this tick's usercmd.
func (b *Buffer) GetInput(client int) (Input, error) {
	if err := b.check(client); err != nil {
		return Input{}, err
	}
	return b.inputs[client], nil
}

// ResetInput clears client's action flags after the host has consumed
// them. View angles and weapon survive the reset, since the next tick's
// handler may not re-set them every frame.
func (b *Buffer) ResetInput(client int) error {
	if err := b.check(client); err != nil {
		return err
	}
	b.inputs[client].ActionFlags = 0
	return nil
}
