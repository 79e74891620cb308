package route

import (
	"math"

	"github.com/noire-dev/aas/aasfile"
)

// travelFlagForType is InitTravelFlagFromType: the static type→flag lookup,
// including TravelInvalid→TFLInvalid.
var travelFlagForType = [...]TravelFlag{
	aasfile.TravelInvalid:      TFLInvalid,
	aasfile.TravelWalk:         TFLWalk,
	aasfile.TravelCrouch:       TFLCrouch,
	aasfile.TravelBarrierJump:  TFLBarrierJump,
	aasfile.TravelJump:         TFLJump,
	aasfile.TravelLadder:       TFLLadder,
	aasfile.TravelWalkOffLedge: TFLWalkOffLedge,
	aasfile.TravelSwim:         TFLSwim,
	aasfile.TravelWaterJump:    TFLWaterJump,
	aasfile.TravelTeleport:     TFLTeleport,
	aasfile.TravelElevator:     TFLElevator,
	aasfile.TravelRocketJump:   TFLRocketJump,
	aasfile.TravelBFGJump:      TFLBFGJump,
	aasfile.TravelGrappleHook:  TFLGrappleHook,
	aasfile.TravelDoubleJump:   TFLDoubleJump,
	aasfile.TravelRampJump:     TFLRampJump,
	aasfile.TravelStrafeJump:   TFLStrafeJump,
	aasfile.TravelJumpPad:      TFLJumpPad,
	aasfile.TravelFuncBob:      TFLFuncBob,
}

// travelFlagOf returns the capability flag for a reachability's travel
// type, or TFLInvalid if the type is out of the known range.
func travelFlagOf(t aasfile.TravelType) TravelFlag {
	t &= aasfile.TravelTypeMask
	if int(t) < 0 || int(t) >= len(travelFlagForType) {
		return TFLInvalid
	}
	return travelFlagForType[t]
}

// initAreaContentsTravelFlags is InitAreaContentsTravelFlags: for every
// area, the content-medium bit (WATER/SLIME/LAVA, exclusively, else AIR)
// plus any restriction bits implied by the area's settings.
func initAreaContentsTravelFlags(f *aasfile.File) []TravelFlag {
	out := make([]TravelFlag, len(f.AreaSettings))
	for i, s := range f.AreaSettings {
		if i == 0 {
			continue
		}
		var flags TravelFlag
		switch {
		case s.Contents&aasfile.ContentsLava != 0:
			flags |= TFLLava
		case s.Contents&aasfile.ContentsSlime != 0:
			flags |= TFLSlime
		case s.Contents&aasfile.ContentsWater != 0:
			flags |= TFLWater
		default:
			flags |= TFLAir
		}
		if s.Contents&aasfile.ContentsDoNotEnter != 0 {
			flags |= TFLDoNotEnter
		}
		if s.Contents&aasfile.ContentsNotTeam1 != 0 {
			flags |= TFLNotTeam1
		}
		if s.Contents&aasfile.ContentsNotTeam2 != 0 {
			flags |= TFLNotTeam2
		}
		if s.AreaFlags&aasfile.AreaBridge != 0 {
			flags |= TFLBridge
		}
		out[i] = flags
	}
	return out
}

// maxReachabilitiesPerArea is the hard ceiling CreateReversedReachability
// enforces: a warning is logged and the remainder silently dropped rather
// than growing any table unbounded.
const maxReachabilitiesPerArea = 128

// reverseLink is one entry of an area's reversed-reachability list: the
// area the edge originates from, and the index of that edge within the
// source area's own (forward) reachability slice.
type reverseLink struct {
	sourceArea int32
	reachIndex int32
}

// createReversedReachability is CreateReversedReachability: for each area,
// the list of (sourceArea, reachIndex) pairs of every reachability pointing
// into it, built by one scan of the forward reachability array.
func createReversedReachability(w worldView, logf func(format string, args ...interface{})) [][]reverseLink {
	numAreas := w.NumAreas()
	out := make([][]reverseLink, numAreas)
	for area := int32(1); area < numAreas; area++ {
		reach := w.Reachabilities(area)
		if len(reach) > maxReachabilitiesPerArea {
			if logf != nil {
				logf("route: area %d has %d outgoing reachabilities, only the first %d are used", area, len(reach), maxReachabilitiesPerArea)
			}
			reach = reach[:maxReachabilitiesPerArea]
		}
		for i, r := range reach {
			dst := r.AreaNum
			if dst <= 0 || int(dst) >= int(numAreas) {
				continue
			}
			out[dst] = append(out[dst], reverseLink{sourceArea: area, reachIndex: int32(i)})
		}
	}
	return out
}

// areaTravelTimes[area][localReachIdx][reverseLinkIdx] is
// CalculateAreaTravelTimes: for area A, for each outgoing reachability R,
// for each incoming reachability I, the time to walk from I.end to R.start
// through A.
func calculateAreaTravelTimes(w worldView, reversed [][]reverseLink) [][][]uint16 {
	numAreas := w.NumAreas()
	out := make([][][]uint16, numAreas)
	for area := int32(1); area < numAreas; area++ {
		outgoing := w.Reachabilities(area)
		if len(outgoing) > maxReachabilitiesPerArea {
			outgoing = outgoing[:maxReachabilitiesPerArea]
		}
		incoming := reversed[area]
		out[area] = make([][]uint16, len(outgoing))
		for ri, r := range outgoing {
			row := make([]uint16, len(incoming))
			for ii, link := range incoming {
				srcReach := w.Reachabilities(link.sourceArea)
				if int(link.reachIndex) >= len(srcReach) {
					row[ii] = 1
					continue
				}
				from := srcReach[link.reachIndex].End
				to := r.Start
				dx := to[0] - from[0]
				dy := to[1] - from[1]
				dz := to[2] - from[2]
				dist := sqrt32(dx*dx + dy*dy + dz*dz)
				row[ii] = travelTime(dist, float32(SpeedFactorWalk))
			}
			out[area][ri] = row
		}
	}
	return out
}

func sqrt32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	// computed in float64 and narrowed, exact to float32 precision.
	return float32(math.Sqrt(float64(v)))
}

// travelTime converts a distance in world units to hundredths of a second
// at the given speed factor, rounded up, floored at 1 (zero-length
// segments round up to 1, per the invariant that travel times are strictly
// positive).
func travelTime(dist float32, speedFactor float32) uint16 {
	t := dist * speedFactor
	rounded := int32(t)
	if float32(rounded) < t {
		rounded++
	}
	if rounded < 1 {
		rounded = 1
	}
	return uint16(rounded)
}

// initPortalMaxTravelTimes is InitPortalMaxTravelTimes: the max-reduce of
// areaTravelTimes over every portal's own area.
func initPortalMaxTravelTimes(f *aasfile.File, areaTimes [][][]uint16) []uint16 {
	out := make([]uint16, len(f.Portals))
	for i, p := range f.Portals {
		var maxT uint16
		if int(p.AreaNum) < len(areaTimes) {
			for _, row := range areaTimes[p.AreaNum] {
				for _, t := range row {
					if t > maxT {
						maxT = t
					}
				}
			}
		}
		out[i] = maxT
	}
	return out
}

// multiAreaReachCap is the per-reachability cap InitReachabilityAreas
// enforces on pass-through area lists.
const multiAreaReachCap = 32

// isMultiAreaTravelType reports the reachability types whose traversal passes
// through more than its two endpoint areas; all other types record zero
// pass-through areas.
func isMultiAreaTravelType(t aasfile.TravelType) bool {
	switch t & aasfile.TravelTypeMask {
	case aasfile.TravelBarrierJump, aasfile.TravelWaterJump, aasfile.TravelWalkOffLedge, aasfile.TravelGrappleHook:
		return true
	}
	return false
}

// areaTracer is the subset of world.World InitReachabilityAreas needs: a
// multi-area sweep between two points.
type areaTracer interface {
	TraceAreasBetween(start, end [3]float32, maxAreas int) []int32
}

// initReachabilityAreas is InitReachabilityAreas: for multi-area
// reachability types, the list of areas the BARRIERJUMP/WATERJUMP/
// WALKOFFLEDGE/GRAPPLEHOOK trace passes through, capped at 32.
func initReachabilityAreas(f *aasfile.File, tracer areaTracer) ([]int32, [][2]int32) {
	var areas []int32
	index := make([][2]int32, len(f.Reachability))
	for i, r := range f.Reachability {
		if !isMultiAreaTravelType(aasfile.TravelType(r.TravelType)) || tracer == nil {
			index[i] = [2]int32{0, 0}
			continue
		}
		hit := tracer.TraceAreasBetween(r.Start, r.End, multiAreaReachCap)
		first := int32(len(areas))
		areas = append(areas, hit...)
		index[i] = [2]int32{first, int32(len(hit))}
	}
	return areas, index
}

// worldView is the subset of world.World the route tables are built from;
// kept narrow so route_test.go can exercise table construction against a
// hand-built fixture without a full world.World.
type worldView interface {
	NumAreas() int32
	Reachabilities(areaNum int32) []aasfile.Reachability
}
