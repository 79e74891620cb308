package move

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
	"github.com/noire-dev/aas/world"
)

// Physics constants the Mover's predictions must match the host
// simulator's.
const (
	SvMaxStep    float32 = 18
	SvMaxBarrier float32 = 32
	SvGravity    float32 = 800
)

func horiz(v d3.Vec3) (float32, float32) { return v[0], v[1] }

func horizDist(a, b d3.Vec3) float32 {
	ax, ay := horiz(a)
	bx, by := horiz(b)
	dx, dy := bx-ax, by-ay
	return math32.Sqrt(dx*dx + dy*dy)
}

func horizDir(from, to d3.Vec3) d3.Vec3 {
	fx, fy := horiz(from)
	tx, ty := horiz(to)
	dx, dy := tx-fx, ty-fy
	l := math32.Sqrt(dx*dx + dy*dy)
	if l < 1e-6 {
		return d3.NewVec3XYZ(0, 0, 0)
	}
	return d3.NewVec3XYZ(dx/l, dy/l, 0)
}

// BotAirControl simulates up to 50 gravity steps of 10ms to find where a
// ballistic path crosses target.z, then returns the unit direction to
// target at that moment with speed ramped 400->100 over the final 32
// units. ok is false if the simulated arc never crosses target's height.
func BotAirControl(origin, velocity, target d3.Vec3) (dir d3.Vec3, speed float32, ok bool) {
	const step = 0.01
	pos := d3.NewVec3From(origin)
	vel := d3.NewVec3From(velocity)
	for i := 0; i < 50; i++ {
		next := d3.NewVec3XYZ(pos[0]+vel[0]*step, pos[1]+vel[1]*step, pos[2]+vel[2]*step)
		if (pos[2] >= target[2] && next[2] <= target[2]) || (pos[2] <= target[2] && next[2] >= target[2]) {
			var frac float32
			if next[2] != pos[2] {
				frac = (target[2] - pos[2]) / (next[2] - pos[2])
			}
			cross := pos.Lerp(next, frac)
			d := horizDir(cross, target)
			dist := horizDist(cross, target)
			speed = float32(400)
			if dist < 32 {
				speed = 100 + (400-100)*(dist/32)
			}
			return d, speed, true
		}
		vel[2] -= SvGravity * step
		pos = next
	}
	return d3.NewVec3XYZ(0, 0, 0), 400, false
}

// BotGapDistance walks forward from origin in 8-unit increments (up to
// 100 units) along dir, tracing downward at each sample to find a drop a
// walking bot would fall into. Returns the distance to the gap and true,
// or false if no gap was found. Liquid at the gap bottom cancels the
// penalty.
func BotGapDistance(w *world.World, origin d3.Vec3, dir d3.Vec3, presence world.Presence) (float32, bool) {
	groundTrace := w.TraceClientBBox(origin, d3.NewVec3XYZ(origin[0], origin[1], origin[2]-60), presence, -1)
	startZ := origin[2]
	if !groundTrace.StartSolid && groundTrace.Fraction < 1 {
		startZ = groundTrace.EndPos[2]
	}

	fx, fy := dir[0], dir[1]
	l := math32.Sqrt(fx*fx + fy*fy)
	if l < 1e-6 {
		return 0, false
	}
	fx, fy = fx/l, fy/l

	for d := float32(8); d <= 100; d += 8 {
		sample := d3.NewVec3XYZ(origin[0]+fx*d, origin[1]+fy*d, startZ)
		down := d3.NewVec3XYZ(sample[0], sample[1], sample[2]-(48+SvMaxBarrier))
		tr := w.TraceClientBBox(sample, down, presence, -1)
		if tr.StartSolid {
			continue
		}
		landZ := sample[2]
		if tr.Fraction < 1 {
			landZ = tr.EndPos[2]
		} else {
			landZ = down[2]
		}
		if landZ < startZ-SvMaxStep-8 {
			if w.Swimming(d3.NewVec3XYZ(sample[0], sample[1], landZ)) {
				continue
			}
			return d, true
		}
		if tr.Fraction < 1 {
			startZ = tr.EndPos[2]
		}
	}
	return 0, false
}

// BotCheckBarrierJump tests whether origin stands at the base of a
// step too tall to walk but short enough to jump: vertical clearance up
// to SvMaxBarrier, then a horizontal probe along dir, then a downward
// trace to find the landing. ok is true only when the landing is above
// origin.z+SvMaxStep (otherwise it's a ledge a walk handles, not a
// barrier).
func BotCheckBarrierJump(w *world.World, origin d3.Vec3, dir d3.Vec3, presence world.Presence) bool {
	up := d3.NewVec3XYZ(origin[0], origin[1], origin[2]+SvMaxBarrier)
	clear := w.TraceClientBBox(origin, up, presence, -1)
	if clear.StartSolid || clear.Fraction*SvMaxBarrier < SvMaxStep {
		return false
	}

	fx, fy := dir[0], dir[1]
	l := math32.Sqrt(fx*fx + fy*fy)
	if l < 1e-6 {
		return false
	}
	fx, fy = fx/l, fy/l
	top := clear.EndPos
	forward := d3.NewVec3XYZ(top[0]+fx*32, top[1]+fy*32, top[2])
	across := w.TraceClientBBox(top, forward, presence, -1)
	if across.StartSolid {
		return false
	}

	down := d3.NewVec3XYZ(across.EndPos[0], across.EndPos[1], across.EndPos[2]-SvMaxBarrier)
	land := w.TraceClientBBox(across.EndPos, down, presence, -1)
	if land.StartSolid || land.Fraction >= 1 {
		return false
	}
	return land.EndPos[2] > origin[2]+SvMaxStep
}
