package move

import "github.com/noire-dev/aas/aasfile"

// botReachabilityTime returns the deadline, in seconds from now, a cached
// reachability remains valid for before the Mover re-routes. The table is
// a contract: JUMPPAD gets 10s, most ground types 5s, LADDER 6s; any other
// (unknown) type defaults to 8s and is reported through logf since a new
// travel type reaching here means the ground/finish handler tables are
// missing an entry for it.
func botReachabilityTime(t aasfile.TravelType, logf func(format string, args ...interface{})) float64 {
	switch t & aasfile.TravelTypeMask {
	case aasfile.TravelJumpPad:
		return 10
	case aasfile.TravelLadder:
		return 6
	case aasfile.TravelWalk, aasfile.TravelCrouch, aasfile.TravelBarrierJump,
		aasfile.TravelWalkOffLedge, aasfile.TravelJump, aasfile.TravelSwim,
		aasfile.TravelWaterJump, aasfile.TravelTeleport:
		return 5
	default:
		if logf != nil {
			logf("BotReachabilityTime: unknown travel type %d, defaulting to 8s", t&aasfile.TravelTypeMask)
		}
		return 8
	}
}

// BotReachabilityTime is botReachabilityTime without a logger, kept for
// callers outside package move that only need the deadline table.
func BotReachabilityTime(t aasfile.TravelType) float64 {
	return botReachabilityTime(t, nil)
}
