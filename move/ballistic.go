package move

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
)

// BallisticSolver models the ballistic math backing WalkOffLedge's speed
// solution and Jump's run-up point as an injectable service rather than
// hand-derived trajectory algebra, so a host can swap in its own solver
// (e.g. one that accounts for air-accelerate tuning) without touching the
// handler logic.
type BallisticSolver interface {
	// HorizontalVelocityForJump returns the horizontal speed needed to
	// travel from start to end when launched with vertical speed zStart
	// under SvGravity, for a bot stepping or falling off a ledge.
	HorizontalVelocityForJump(zStart float32, start, end d3.Vec3) (speed float32, ok bool)

	// JumpReachRunStart returns the point a bot should begin its run-up
	// from to land a standing jump ending at reach.End, arriving at
	// reach.Start with enough horizontal speed.
	JumpReachRunStart(start, end d3.Vec3) d3.Vec3
}

// DefaultBallisticSolver implements BallisticSolver with the closed-form
// projectile solution for constant gravity and a fixed jump height,
// matching the shape of the reduced botlib's jump tables without
// reproducing their tuning constants exactly.
type DefaultBallisticSolver struct{}

// jumpZVelocity is the vertical launch speed a standing jump imparts,
// matching Quake 3's default jump height under SvGravity.
const jumpZVelocity float32 = 270

func (DefaultBallisticSolver) HorizontalVelocityForJump(zStart float32, start, end d3.Vec3) (float32, bool) {
	dz := end[2] - start[2]
	dx, dy := end[0]-start[0], end[1]-start[1]
	dist := math32.Sqrt(dx*dx + dy*dy)

	// time to apex-and-fall to dz under constant gravity starting at
	// vertical speed zStart: dz = zStart*t - 0.5*g*t^2
	a := -0.5 * SvGravity
	b := zStart
	c := -dz
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	t := math32.Max(t1, t2)
	if t <= 0 {
		return 0, false
	}
	return dist / t, true
}

func (DefaultBallisticSolver) JumpReachRunStart(start, end d3.Vec3) d3.Vec3 {
	dx, dy := start[0]-end[0], start[1]-end[1]
	l := math32.Sqrt(dx*dx + dy*dy)
	if l < 1e-6 {
		return d3.NewVec3From(start)
	}
	// back up a fixed 64 units horizontally, away from end, so the bot has
	// room to build up run speed before leaving the ground at start.
	const runback = 64
	ux, uy := dx/l, dy/l
	return d3.NewVec3XYZ(start[0]+ux*runback, start[1]+uy*runback, start[2])
}
