package world

import (
	"github.com/aurelien-rainone/assertgo"
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
)

// traceStackCap is the BSP descent stack capacity. Overflowing it is a
// map-data bug, not a runtime condition to gracefully handle.
const traceStackCap = 127

// tracePlaneEpsilon, traceFracMin and traceFracMax are the trace's plane
// and fraction epsilons, preserved bit-exactly from the reference values.
const (
	tracePlaneEpsilon = 0.125
	traceFracMin      = 0.001
	traceFracMax      = 0.999
)

// Trace is the result of a swept bounding-box query against the world.
type Trace struct {
	StartSolid  bool
	Fraction    float32 // 1 means the full segment completed without a hit
	EndPos      d3.Vec3
	Area        int32 // blocking area leaf, 0 if solid
	PlaneNum    int32 // low bit flipped to face the trace origin
	PlaneNormal [3]float32
	Ent         int32 // area-linked entity that blocked, -1 if none
}

func presenceFlag(p Presence) int32 { return int32(p) }

type traceFrame struct {
	node     int32
	p1, p2   d3.Vec3
	f1, f2   float32
	planeNum int32 // plane of the most recent split on the path to this frame, -1 if none yet
}

// TraceClientBBox sweeps a presence-sized box from start to end and
// returns the first blocking event. passEnt (or -1) excludes one entity
// from entity-in-area collision.
func (w *World) TraceClientBBox(start, end d3.Vec3, presence Presence, passEnt int32) Trace {
	mins, maxs := PresenceBoundingBox(presence)
	tr := Trace{Fraction: 1, EndPos: d3.NewVec3From(end), Area: 0, Ent: -1}

	if len(w.file.Nodes) == 0 {
		tr.StartSolid = true
		tr.Fraction = 1
		return tr
	}

	stack := make([]traceFrame, 0, traceStackCap)
	push := func(fr traceFrame) {
		if len(stack) >= traceStackCap {
			panic("world: trace stack overflow, map data exceeds the 127-entry descent limit")
		}
		stack = append(stack, fr)
	}
	push(traceFrame{node: 1, p1: start, p2: end, f1: 0, f2: 1, planeNum: -1})

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.f1 >= tr.Fraction {
			// a nearer collision was already found while this frame sat on
			// the stack; no need to examine it.
			continue
		}

		if fr.node <= 0 {
			w.traceLeaf(fr, -fr.node, presence, passEnt, start, end, &tr)
			continue
		}

		assert.True(int(fr.node) < len(w.file.Nodes), "node index out of range, node=%d, len(Nodes)=%d", fr.node, len(w.file.Nodes))
		n := w.file.Nodes[fr.node]
		plane := w.file.Planes[n.PlaneNum]
		normal := d3.NewVec3XYZ(plane.Normal[0], plane.Normal[1], plane.Normal[2])

		var offset float32
		for i := 0; i < 3; i++ {
			if normal[i] < 0 {
				offset += maxs[i] * normal[i]
			} else {
				offset += mins[i] * normal[i]
			}
		}
		adjDist := plane.Dist - offset - tracePlaneEpsilon

		t1 := normal.Dot(fr.p1) - adjDist
		t2 := normal.Dot(fr.p2) - adjDist

		switch {
		case t1 >= 0 && t2 >= 0:
			push(traceFrame{node: n.Children[0], p1: fr.p1, p2: fr.p2, f1: fr.f1, f2: fr.f2, planeNum: fr.planeNum})
		case t1 < 0 && t2 < 0:
			push(traceFrame{node: n.Children[1], p1: fr.p1, p2: fr.p2, f1: fr.f1, f2: fr.f2, planeNum: fr.planeNum})
		default:
			frac := t1 / (t1 - t2)
			frac = math32.Clamp(frac, traceFracMin, traceFracMax)
			mid := fr.p1.Lerp(fr.p2, frac)
			fmid := fr.f1 + (fr.f2-fr.f1)*frac

			near, far := n.Children[0], n.Children[1]
			if t1 < 0 {
				near, far = n.Children[1], n.Children[0]
			}
			// the split plane belongs to the far frame: a solid leaf on the
			// far side is entered through this plane, so it is the
			// collision surface. The near frame keeps the plane it inherited.
			splitPlane := n.PlaneNum * 2
			// push the far side first so the near side, examined first,
			// reports the earliest collision.
			push(traceFrame{node: far, p1: mid, p2: fr.p2, f1: fmid, f2: fr.f2, planeNum: splitPlane})
			push(traceFrame{node: near, p1: fr.p1, p2: mid, f1: fr.f1, f2: fmid, planeNum: fr.planeNum})
		}
	}

	if tr.Fraction < 1 {
		tr.EndPos = start.Lerp(end, tr.Fraction)
	}
	return tr
}

func (w *World) traceLeaf(fr traceFrame, areaNum int32, presence Presence, passEnt int32, start, end d3.Vec3, tr *Trace) {
	if areaNum == 0 {
		// solid leaf
		if fr.f1 <= 0 && fr.p1.Approx(start) {
			tr.StartSolid = true
		}
		if fr.f1 < tr.Fraction {
			tr.Fraction = fr.f1
			tr.Area = 0
			tr.Ent = -1
			w.setBlockingPlane(fr, start, tr)
		}
		return
	}

	settings, err := w.AreaSettings(areaNum)
	if err != nil || settings.Presencetype&presenceFlag(presence) == 0 {
		// unreachable or insufficient presence: treated as solid.
		if fr.f1 <= 0 && fr.p1.Approx(start) {
			tr.StartSolid = true
		}
		if fr.f1 < tr.Fraction {
			tr.Fraction = fr.f1
			tr.Area = areaNum
			tr.Ent = -1
			w.setBlockingPlane(fr, start, tr)
		}
		return
	}

	if w.Entities == nil {
		return
	}
	mins, maxs := PresenceBoundingBox(presence)
	const contentsSolidOrPlayerclip = 1
	for _, ent := range w.links.EntitiesInArea(areaNum) {
		if ent == passEnt {
			continue
		}
		frac, hit := w.Entities.EntityCollision(
			[3]float32(start), [3]float32(mins), [3]float32(maxs), [3]float32(end),
			ent, contentsSolidOrPlayerclip)
		if hit && frac < tr.Fraction {
			tr.Fraction = frac
			tr.Area = areaNum
			tr.Ent = ent
		}
	}
}

// setBlockingPlane resolves tr.PlaneNum/PlaneNormal from the split plane
// recorded on fr, flipping it (XOR 1, per the low-bit convention shared
// with PlaneFromNum) so the reported normal faces back toward the trace
// origin rather than whichever way it happened to be stored.
func (w *World) setBlockingPlane(fr traceFrame, origin d3.Vec3, tr *Trace) {
	if fr.planeNum < 0 {
		tr.PlaneNum = -1
		return
	}
	p := w.PlaneFromNum(fr.planeNum)
	normal := d3.NewVec3XYZ(p.Normal[0], p.Normal[1], p.Normal[2])
	planeNum := fr.planeNum
	if normal.Dot(origin) < p.Dist {
		planeNum ^= 1
		p = w.PlaneFromNum(planeNum)
	}
	tr.PlaneNum = planeNum
	tr.PlaneNormal = [3]float32{p.Normal[0], p.Normal[1], p.Normal[2]}
}

// AreaHit is one entry of a TraceAreas result: the area entered and the
// point at which the sweep entered it.
type AreaHit struct {
	Area  int32
	Point d3.Vec3
}

// TraceAreasBetween is TraceAreas with plain [3]float32 endpoints and a
// bare area-number result, the shape package route's table builder needs
// without taking a dependency on d3.Vec3.
func (w *World) TraceAreasBetween(start, end [3]float32, maxAreas int) []int32 {
	hits := w.TraceAreas(d3.NewVec3XYZ(start[0], start[1], start[2]), d3.NewVec3XYZ(end[0], end[1], end[2]), maxAreas)
	out := make([]int32, len(hits))
	for i, h := range hits {
		out[i] = h.Area
	}
	return out
}

// TraceAreas collects every area the line from start to end passes
// through, up to maxAreas entries, together with each area's entry point.
func (w *World) TraceAreas(start, end d3.Vec3, maxAreas int) []AreaHit {
	if maxAreas <= 0 || len(w.file.Nodes) == 0 {
		return nil
	}

	var hits []AreaHit
	seen := make(map[int32]bool)

	type frame struct {
		node   int32
		p1, p2 d3.Vec3
	}
	stack := make([]frame, 0, traceStackCap)
	stack = append(stack, frame{node: 1, p1: start, p2: end})

	for len(stack) > 0 && len(hits) < maxAreas {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.node <= 0 {
			area := -fr.node
			if area != 0 && !seen[area] {
				seen[area] = true
				hits = append(hits, AreaHit{Area: area, Point: fr.p1})
			}
			continue
		}

		assert.True(int(fr.node) < len(w.file.Nodes), "node index out of range, node=%d, len(Nodes)=%d", fr.node, len(w.file.Nodes))
		n := w.file.Nodes[fr.node]
		plane := w.file.Planes[n.PlaneNum]
		normal := d3.NewVec3XYZ(plane.Normal[0], plane.Normal[1], plane.Normal[2])
		t1 := normal.Dot(fr.p1) - plane.Dist
		t2 := normal.Dot(fr.p2) - plane.Dist

		switch {
		case t1 >= 0 && t2 >= 0:
			stack = append(stack, frame{node: n.Children[0], p1: fr.p1, p2: fr.p2})
		case t1 < 0 && t2 < 0:
			stack = append(stack, frame{node: n.Children[1], p1: fr.p1, p2: fr.p2})
		default:
			frac := math32.Clamp(t1/(t1-t2), traceFracMin, traceFracMax)
			mid := fr.p1.Lerp(fr.p2, frac)
			if t1 >= 0 {
				stack = append(stack, frame{node: n.Children[1], p1: mid, p2: fr.p2})
				stack = append(stack, frame{node: n.Children[0], p1: fr.p1, p2: mid})
			} else {
				stack = append(stack, frame{node: n.Children[0], p1: mid, p2: fr.p2})
				stack = append(stack, frame{node: n.Children[1], p1: fr.p1, p2: mid})
			}
		}
	}
	return hits
}
