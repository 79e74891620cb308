// Package aaslib is the library host glue: a flat vtable matching the
// reduced botlib's Setup/Shutdown/StartFrame/LoadMap/UpdateEntity calls,
// fronting the AAS/EA/AI sub-tables the host drives per tick.
package aaslib

import (
	"fmt"
	"path"
	"strings"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/ea"
	"github.com/noire-dev/aas/goal"
	"github.com/noire-dev/aas/move"
	"github.com/noire-dev/aas/route"
	"github.com/noire-dev/aas/world"
)

func vec3(v [3]float32) d3.Vec3 { return d3.NewVec3XYZ(v[0], v[1], v[2]) }

// entityColliderAdapter turns the host's EntityTrace callback into the
// single-entity collision shim world.TraceClientBBox needs to account for
// area-linked entities not part of the static BSP.
type entityColliderAdapter struct{ imp Import }

func (a entityColliderAdapter) EntityCollision(start, mins, maxs, end [3]float32, ent int32, contentMask int32) (float32, bool) {
	frac, _, _, startSolid := a.imp.EntityTrace(start, mins, maxs, end, ent, contentMask)
	return frac, !startSolid && frac < 1
}

// Library is the top-level facade a host embeds: one per loaded map,
// owning the Sampler, Router, elementary-action buffer and movement pool
// together.
type Library struct {
	imp      Import
	settings Settings
	setup    bool

	now float64 // seconds, advanced by StartFrame

	w      *world.World
	router *route.Router
	ea     *ea.Buffer
	pool   *move.Pool
	mover  *move.Mover

	entities []EntityState
}

// NewLibrary constructs an unsetup Library; Setup must be called before
// any other method.
func NewLibrary() *Library { return &Library{} }

func (l *Library) checkSetup(who string) Status {
	if !l.setup {
		if l.imp != nil {
			l.imp.Print(PrintError, "%s: bot library used before being setup", who)
		}
		return Failure | LibraryNotSetup
	}
	return Success
}

// Setup is BotLibSetup: it wires the host's Import, reads Settings,
// allocates the per-client elementary-action buffer and movement-state
// pool, and marks the library ready. A second Setup call before Shutdown
// is a no-op success, matching the original's idempotent guard.
func (l *Library) Setup(imp Import, settings Settings) Status {
	if l.setup {
		return Success
	}
	l.imp = imp
	l.settings = settings
	l.ea = ea.Setup(settings.MaxClients)
	l.pool = move.NewPool(settings.MaxClients)
	l.entities = make([]EntityState, settings.MaxEntities)
	l.setup = true
	return Success
}

// Shutdown is BotLibShutdown.
func (l *Library) Shutdown() Status {
	if s := l.checkSetup("BotLibShutdown"); StatusFailed(s) {
		return s
	}
	l.ea.Shutdown()
	l.ea, l.pool, l.w, l.router, l.mover, l.entities = nil, nil, nil, nil, nil, nil
	l.setup = false
	return Success
}

// StartFrame is BotLibStartFrame: it records the world time used to time
// out cached reachabilities.
func (l *Library) StartFrame(time float64) Status {
	if s := l.checkSetup("BotLibStartFrame"); StatusFailed(s) {
		return s
	}
	l.now = time
	return Success
}

// LoadMap is BotLibLoadMap: it opens mapname's .aas file through the
// host's filesystem import, builds the World and Router, and wires a
// fresh Mover over them.
func (l *Library) LoadMap(mapname string) Status {
	if s := l.checkSetup("BotLibLoadMap"); StatusFailed(s) {
		return s
	}
	aasName := mapname
	if strings.ToLower(path.Ext(aasName)) != ".aas" {
		aasName = strings.TrimSuffix(aasName, path.Ext(aasName)) + ".aas"
	}
	f, err := l.imp.OpenAASFile(aasName)
	if err != nil {
		l.imp.Print(PrintError, "BotLibLoadMap: %v", err)
		return Failure | CannotOpenAASFile
	}
	defer f.Close()

	w, err := world.Load(f, l.settings.LinkHeapSize)
	if err != nil {
		l.imp.Print(PrintError, "BotLibLoadMap: %v", err)
		return Failure | WrongAASFileID
	}
	w.SetEntityCollider(entityColliderAdapter{imp: l.imp})

	l.w = w
	l.router = route.InitRouting(w, func(format string, args ...interface{}) {
		l.imp.Print(PrintWarning, format, args...)
	})
	l.mover = move.NewMover(w, l.router, l.ea, l.pool, nil, func() float64 { return l.now })
	l.mover.Logf = func(format string, args ...interface{}) {
		l.imp.Print(PrintWarning, format, args...)
	}
	return Success
}

// UpdateEntity is BotLibUpdateEntity.
func (l *Library) UpdateEntity(ent int32, state EntityState) Status {
	if s := l.checkSetup("BotLibUpdateEntity"); StatusFailed(s) {
		return s
	}
	if ent < 0 || int(ent) >= len(l.entities) {
		l.imp.Print(PrintError, "BotLibUpdateEntity: invalid entity number %d, [0, %d)", ent, len(l.entities))
		return Failure | InvalidEntityNumber
	}
	l.entities[ent] = state
	return Success
}

// AAS returns the point/trace query sub-table.
func (l *Library) AAS() AASTable { return AASTable{lib: l} }

// EA returns the elementary-action sub-table.
func (l *Library) EA() EATable { return EATable{lib: l} }

// AI returns the goal/movement sub-table.
func (l *Library) AI() AITable { return AITable{lib: l} }

// AASTable is aas_export_t: point location and area tracing.
type AASTable struct{ lib *Library }

func (a AASTable) Initialized() bool { return a.lib.w != nil }

func (a AASTable) Time() float64 { return a.lib.now }

func (a AASTable) PointAreaNum(point [3]float32) int32 {
	if a.lib.w == nil {
		return 0
	}
	return a.lib.w.PointAreaNum(vec3(point))
}

func (a AASTable) TraceAreas(start, end [3]float32, maxAreas int) []int32 {
	if a.lib.w == nil {
		return nil
	}
	return a.lib.w.TraceAreasBetween(start, end, maxAreas)
}

// EATable is ea_export_t, minus the cosmetic Gesture/Attack/Use/Command
// intents this module doesn't model: View, Move, SelectWeapon, GetInput
// and ResetInput carry the movement-relevant subset.
type EATable struct{ lib *Library }

func (e EATable) View(client int, angles [3]float32) error { return e.lib.ea.View(client, angles) }
func (e EATable) Move(client int, dir [3]float32) error    { return e.lib.ea.Move(client, dir) }
func (e EATable) SelectWeapon(client int, weapon int32) error {
	return e.lib.ea.SelectWeapon(client, weapon)
}
func (e EATable) GetInput(client int) (ea.Input, error) { return e.lib.ea.GetInput(client) }
func (e EATable) ResetInput(client int) error            { return e.lib.ea.ResetInput(client) }

// AITable is ai_export_t: goal containment and the movement state machine.
type AITable struct{ lib *Library }

func (a AITable) TouchingGoal(origin [3]float32, g goal.Goal) bool {
	return goal.TouchingGoal(origin, g, goal.DefaultConfig())
}

// InitMove is bot_initmove_t: the one-time seed a host supplies when
// (re)spawning a bot's movement state.
type InitMove struct {
	Origin       [3]float32
	Velocity     [3]float32
	ViewOffset   [3]float32
	EntityNum    int32
	Client       int32
	ThinkTime    float32
	PresenceType int32
	ViewAngles   [3]float32
}

func (a AITable) AllocMoveState() (int32, error) {
	if a.lib.pool == nil {
		return 0, fmt.Errorf("aaslib: library not setup")
	}
	return a.lib.pool.Alloc()
}

func (a AITable) FreeMoveState(handle int32) { a.lib.pool.Free(handle) }

func (a AITable) ResetMoveState(handle int32) { a.lib.pool.Reset(handle) }

func (a AITable) InitMoveState(handle int32, init InitMove) {
	st := a.lib.pool.Init(handle, init.EntityNum, init.Client)
	st.Origin = vec3(init.Origin)
	st.Velocity = vec3(init.Velocity)
	st.ViewOffset = vec3(init.ViewOffset)
	st.ThinkTime = init.ThinkTime
	st.Presence = world.Presence(init.PresenceType)
	st.ViewAngles = init.ViewAngles
}

// MoveToGoal is BotMoveToGoal.
func (a AITable) MoveToGoal(handle int32, g goal.Goal, travelFlags route.TravelFlag) move.MoveResult {
	filter := route.NewStandardFilter()
	filter.SetIncludeFlags(travelFlags)
	return a.lib.mover.MoveToGoalFiltered(handle, g.AreaNum, g.Origin, filter)
}
