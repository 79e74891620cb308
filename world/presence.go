package world

import (
	"fmt"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/aasfile"
)

// Presence is a bot's current body posture, selecting which bounding box
// the sampler sweeps through the world on its behalf.
type Presence int32

// The only two presence types the reduced botlib recognizes.
const (
	PresenceNormal Presence = Presence(aasfile.PresenceNormal)
	PresenceCrouch Presence = Presence(aasfile.PresenceCrouch)
)

func (p Presence) String() string {
	switch p {
	case PresenceNormal:
		return "normal"
	case PresenceCrouch:
		return "crouch"
	default:
		return fmt.Sprintf("presence(%d)", int32(p))
	}
}

// PresenceBoundingBox returns the mins/maxs of the bounding box swept by a
// bot with the given presence type. These constants are a contract, not a
// tuning knob: NORMAL is a 30x30x56 upright box, CROUCH the same footprint
// lowered to a 30x30x32 box.
func PresenceBoundingBox(p Presence) (mins, maxs d3.Vec3) {
	switch p {
	case PresenceNormal:
		return d3.NewVec3XYZ(-15, -15, -24), d3.NewVec3XYZ(15, 15, 32)
	case PresenceCrouch:
		return d3.NewVec3XYZ(-15, -15, -24), d3.NewVec3XYZ(15, 15, 8)
	default:
		panic(fmt.Sprintf("world: invalid presence type %d", int32(p)))
	}
}
