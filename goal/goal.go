// Package goal implements the goal containment test: whether a bot's
// origin lies inside a goal volume contracted by the presence bounding
// box it's measured with.
package goal

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/world"
)

// Goal is one named destination a bot can be routed to: the area it lives
// in, its world-space origin, and the AABB (relative to origin) a bot is
// considered to have reached.
type Goal struct {
	Number  int32
	AreaNum int32
	Origin  [3]float32
	Mins    [3]float32
	Maxs    [3]float32
}

// Config holds the goal test's tunables. Safety is the original's
// commented-out shrink ({4,4,10}/{-4,-4,0} in be_ai_goal.c, never enabled):
// kept here as an explicit always-zero field rather than dead code, so a
// caller that wants the original's commented-out safety margin can opt in
// without touching TouchingGoal itself.
type Config struct {
	SafetyMins [3]float32
	SafetyMaxs [3]float32
}

// DefaultConfig returns the zero-safety configuration matching the
// original's shipped (not its commented-out) behavior.
func DefaultConfig() Config { return Config{} }

// TouchingGoal reports whether origin lies within g's AABB contracted by
// the PresenceNormal bounding box: the box is only touching when some part
// of a normal-sized body at origin overlaps it, not just origin's point.
func TouchingGoal(origin [3]float32, g Goal, cfg Config) bool {
	boxMins, boxMaxs := world.PresenceBoundingBox(world.PresenceNormal)

	absMins := d3.NewVec3XYZ(
		g.Mins[0]-boxMaxs[0]+g.Origin[0]-cfg.SafetyMins[0],
		g.Mins[1]-boxMaxs[1]+g.Origin[1]-cfg.SafetyMins[1],
		g.Mins[2]-boxMaxs[2]+g.Origin[2]-cfg.SafetyMins[2],
	)
	absMaxs := d3.NewVec3XYZ(
		g.Maxs[0]-boxMins[0]+g.Origin[0]-cfg.SafetyMaxs[0],
		g.Maxs[1]-boxMins[1]+g.Origin[1]-cfg.SafetyMaxs[1],
		g.Maxs[2]-boxMins[2]+g.Origin[2]-cfg.SafetyMaxs[2],
	)

	for i := 0; i < 3; i++ {
		if origin[i] < absMins[i] || origin[i] > absMaxs[i] {
			return false
		}
	}
	return true
}
