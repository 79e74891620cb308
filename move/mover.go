package move

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/aasfile"
	"github.com/noire-dev/aas/ea"
	"github.com/noire-dev/aas/route"
	"github.com/noire-dev/aas/world"
)

// Mover drives one host's bots through MoveToGoal: it owns no per-bot state
// itself (that lives in the Pool), just the services a tick's handler needs
// to read the world, ask the router for a next hop and write elementary
// actions.
type Mover struct {
	World     *world.World
	Router    *route.Router
	Actions   *ea.Buffer
	Pool      *Pool
	Ballistic BallisticSolver

	Now  func() float64                            // world time in seconds; overridable for deterministic tests
	Logf func(format string, args ...interface{}) // diagnostic sink; nil discards
}

// NewMover wires the four collaborators MoveToGoal needs. now defaults to
// an always-zero clock when nil, which is enough for tests that don't
// exercise reachability-cache expiry.
func NewMover(w *world.World, router *route.Router, actions *ea.Buffer, pool *Pool, ballistic BallisticSolver, now func() float64) *Mover {
	if ballistic == nil {
		ballistic = DefaultBallisticSolver{}
	}
	if now == nil {
		now = func() float64 { return 0 }
	}
	return &Mover{World: w, Router: router, Actions: actions, Pool: pool, Ballistic: ballistic, Now: now}
}

// sense refreshes st's ground/swim/ladder flags and area number from the
// world for the tick about to run, clearing the previous tick's transient
// flags first.
func (mv *Mover) sense(st *State) {
	st.MoveFlags &^= FlagOnGround | FlagSwimming | FlagAgainstLadder
	if mv.World.OnGround(st.Origin, st.Presence) {
		st.MoveFlags |= FlagOnGround
	}
	if mv.World.Swimming(st.Origin) {
		st.MoveFlags |= FlagSwimming
	}
	if mv.World.AgainstLadder(st.Origin) {
		st.MoveFlags |= FlagAgainstLadder
	}
	st.LastAreaNum = st.AreaNum
	st.AreaNum = mv.World.PointReachabilityAreaNum(st.Origin)
}

// traction reports whether this tick's handler dispatch should run (bot is
// grounded, swimming, on a ladder, or waterjumping) rather than the
// airborne finish-handler path.
func traction(st *State) bool {
	return st.MoveFlags&(FlagOnGround|FlagSwimming|FlagAgainstLadder|FlagWaterJump) != 0
}

// MoveToGoal runs one tick of the movement state machine for handle,
// trying to make progress toward goalArea/goalOrigin: re-sense traction,
// dispatch a ground or airborne handler, decay the cached reachability's
// deadline, and record lastorigin for the next tick's stuck-detection.
func (mv *Mover) MoveToGoal(handle int32, goalArea int32, goalOrigin [3]float32) MoveResult {
	return mv.MoveToGoalFiltered(handle, goalArea, goalOrigin, nil)
}

// MoveToGoalFiltered is MoveToGoal with an explicit travel-capability
// filter, the Go shape of BotMoveToGoal's travelflags parameter. A nil
// filter uses route.NewStandardFilter's defaults.
func (mv *Mover) MoveToGoalFiltered(handle int32, goalArea int32, goalOrigin [3]float32, filter route.Filter) MoveResult {
	st := mv.Pool.Get(handle)
	mv.Actions.ResetInput(int(st.Client))
	mv.sense(st)

	if st.AreaNum <= 0 {
		st.LastOrigin = st.Origin
		return MoveResult{Failure: true, FailureReason: FailureInSolidArea}
	}

	if st.AreaNum == goalArea {
		goal := d3.NewVec3XYZ(goalOrigin[0], goalOrigin[1], goalOrigin[2])
		res := handleMoveInGoalArea(mv, st, goal)
		st.LastOrigin = st.Origin
		return res
	}

	var res MoveResult
	if traction(st) {
		res = mv.dispatchGrounded(st, goalArea, goalOrigin, filter)
	} else {
		res = mv.dispatchAirborne(st, goalArea)
	}

	if res.Blocked {
		st.ReachabilityTime -= 10 * float64(st.ThinkTime)
	}

	if st.ReachabilityTime > 0 && mv.Now() > st.ReachabilityTime {
		st.LastReachNum = 0
	}
	st.LastOrigin = st.Origin
	return res
}

// dispatchGrounded picks (or reuses) a reachability out of the current
// area and runs its ground handler.
func (mv *Mover) dispatchGrounded(st *State, goalArea int32, goalOrigin [3]float32, filter route.Filter) MoveResult {
	reach, ok := mv.currentReachability(st, goalArea, goalOrigin, filter)
	if !ok {
		return MoveResult{Failure: true, FailureReason: FailureNoRoute}
	}

	handler, known := groundHandlers[aasfile.TravelType(reach.TravelType)&aasfile.TravelTypeMask]
	if !known {
		return MoveResult{Failure: true, FailureReason: FailureUnknownTravelType}
	}
	return handler(mv, st, reach)
}

// dispatchAirborne runs the cached reachability's finish handler while the
// bot has no ground/water/ladder traction, e.g. mid-jump or mid-jumppad.
// Before replaying the cache it scans backward along the bot's velocity
// for a jump-pad area the bot may have entered without ms.moveflags ever
// reporting ground traction there, adopting that jump-pad reachability if
// found.
func (mv *Mover) dispatchAirborne(st *State, goalArea int32) MoveResult {
	mv.scanForJumpPad(st, goalArea)

	if st.LastReachNum <= 0 {
		return MoveResult{Failure: true, FailureReason: FailureNoRoute}
	}
	reachs := mv.World.Reachabilities(st.ReachAreaNum)
	idx := int(st.LastReachNum) - 1
	if idx < 0 || idx >= len(reachs) {
		return MoveResult{Failure: true, FailureReason: FailureNoRoute}
	}
	reach := reachs[idx]
	handler, known := finishHandlers[aasfile.TravelType(reach.TravelType)&aasfile.TravelTypeMask]
	if !known {
		return MoveResult{TravelType: aasfile.TravelType(reach.TravelType) & aasfile.TravelTypeMask}
	}
	return handler(mv, st, reach)
}

// scanForJumpPad traces backward from the bot's origin along -2*thinktime
// of velocity, and if that segment passes through an area carrying a
// TRAVEL_JUMPPAD reachability, adopts it as the cached reachability:
// farthest area along the backward trace first, preferring one that actually routes toward goalArea
// but falling back to the bare jump-pad reachability otherwise.
func (mv *Mover) scanForJumpPad(st *State, goalArea int32) {
	if st.ThinkTime <= 0 {
		return
	}
	end := st.Origin.Sub(st.Velocity.Scale(2 * st.ThinkTime))
	areas := mv.World.TraceAreasBetween([3]float32(st.Origin), [3]float32(end), 16)

	for i := len(areas) - 1; i >= 0; i-- {
		area := areas[i]
		reachs := mv.World.Reachabilities(area)
		jumpPadIdx := -1
		for j, r := range reachs {
			if aasfile.TravelType(r.TravelType)&aasfile.TravelTypeMask == aasfile.TravelJumpPad {
				jumpPadIdx = j
				break
			}
		}
		if jumpPadIdx < 0 {
			continue
		}

		jumpPadFilter := route.NewStandardFilter()
		jumpPadFilter.SetIncludeFlags(route.TFLJumpPad)
		if result, ok := mv.Router.Route(area, [3]float32(end), goalArea, jumpPadFilter); ok {
			for j, r := range reachs {
				if r == result.Reach {
					st.LastReachNum = int32(j + 1)
					st.ReachAreaNum = area
					return
				}
			}
		}
		st.LastReachNum = int32(jumpPadIdx + 1)
		st.ReachAreaNum = area
		return
	}
}

// currentReachability returns the reachability to follow this tick: the
// cached one if it's still valid and still leads from the bot's area,
// otherwise a fresh route query.
func (mv *Mover) currentReachability(st *State, goalArea int32, goalOrigin [3]float32, filter route.Filter) (aasfile.Reachability, bool) {
	if st.LastReachNum > 0 && st.ReachAreaNum == st.AreaNum && st.LastGoalAreaNum == goalArea && st.ReachabilityTime > mv.Now() {
		reachs := mv.World.Reachabilities(st.AreaNum)
		idx := int(st.LastReachNum) - 1
		if idx >= 0 && idx < len(reachs) {
			return reachs[idx], true
		}
	}

	if filter == nil {
		filter = route.NewStandardFilter()
	}
	result, ok := mv.Router.Route(st.AreaNum, [3]float32{st.Origin[0], st.Origin[1], st.Origin[2]}, goalArea, filter)
	if !ok {
		return aasfile.Reachability{}, false
	}

	reachs := mv.World.Reachabilities(st.AreaNum)
	for i, r := range reachs {
		if r == result.Reach {
			st.LastReachNum = int32(i + 1)
			st.ReachAreaNum = st.AreaNum
			st.ReachabilityTime = mv.Now() + botReachabilityTime(aasfile.TravelType(r.TravelType)&aasfile.TravelTypeMask, mv.Logf)
			st.LastGoalAreaNum = goalArea
			return r, true
		}
	}
	return aasfile.Reachability{}, false
}
