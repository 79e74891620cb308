package world

import (
	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/aurelien-rainone/math32"
	"github.com/noire-dev/aas/aasfile"
)

func dot3(a [3]float32, b d3.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// PointAreaNum descends the BSP tree from node 1, returning the area
// number that contains point, or 0 if point lies in solid or outside the
// tree entirely. Cost is O(tree depth).
func (w *World) PointAreaNum(point d3.Vec3) int32 {
	nodes := w.file.Nodes
	if len(nodes) == 0 {
		return 0
	}
	node := int32(1)
	for node > 0 {
		if int(node) >= len(nodes) {
			return 0
		}
		n := nodes[node]
		p := w.file.Planes[n.PlaneNum]
		d := dot3(p.Normal, point) - p.Dist
		if d > 0 {
			node = n.Children[0]
		} else {
			node = n.Children[1]
		}
	}
	return -node
}

// PointInsideFace reports whether point lies inside faceNum's polygon,
// within epsilon of each edge's separating plane. For each edge the
// separating normal is cross(edgeVector, planeNormal); point is outside
// as soon as one edge's test falls below -epsilon.
func (w *World) PointInsideFace(faceNum int32, point d3.Vec3, epsilon float32) bool {
	if int(faceNum) <= 0 || int(faceNum) >= len(w.file.Faces) {
		return false
	}
	face := w.file.Faces[faceNum]
	plane := w.file.Planes[face.PlaneNum]
	normal := d3.NewVec3XYZ(plane.Normal[0], plane.Normal[1], plane.Normal[2])

	for i := int32(0); i < face.NumEdges; i++ {
		edgeIdx := w.file.EdgeIndex[face.FirstEdge+i]
		var v1, v2 int32
		if edgeIdx < 0 {
			e := w.file.Edges[-edgeIdx]
			v1, v2 = e.V[1], e.V[0]
		} else {
			e := w.file.Edges[edgeIdx]
			v1, v2 = e.V[0], e.V[1]
		}
		p1 := w.vertex(v1)
		p2 := w.vertex(v2)
		edgeVec := d3.NewVec3XYZ(p2[0]-p1[0], p2[1]-p1[1], p2[2]-p1[2])
		sep := edgeVec.Cross(normal)

		pv := d3.NewVec3XYZ(p1[0], p1[1], p1[2])
		rel := point.Sub(pv)
		if rel.Dot(sep) < -epsilon {
			return false
		}
	}
	return true
}

// PlaneFromNum decodes planeNum as a plane index shifted left one bit
// with the low bit selecting the side: it returns the plane record at
// planeNum>>1, with the sign of both normal and distance flipped when the
// low bit is set to 1. TraceClientBBox records blocking planes this way.
func (w *World) PlaneFromNum(planeNum int32) aasfile.Plane {
	p := w.file.Planes[planeNum>>1]
	if planeNum&1 != 0 {
		p.Normal[0], p.Normal[1], p.Normal[2] = -p.Normal[0], -p.Normal[1], -p.Normal[2]
		p.Dist = -p.Dist
	}
	return p
}

// ladderPlaneTolerance is the epsilon used by AgainstLadder.
const ladderPlaneTolerance = 3.0

// AgainstLadder reports whether point sits against a ladder face: the
// point's area must carry AREA_LADDER and allow PRESENCE_NORMAL, and at
// least one of its FACE_LADDER faces must pass both the plane-distance
// tolerance and a 0.1-epsilon PointInsideFace test. A 1-unit jitter
// upward is applied first if the direct point→area lookup misses.
func (w *World) AgainstLadder(point d3.Vec3) bool {
	areaNum := w.PointAreaNum(point)
	if areaNum == 0 {
		jittered := point.Add(d3.NewVec3XYZ(0, 0, 1))
		areaNum = w.PointAreaNum(jittered)
	}
	if areaNum == 0 {
		return false
	}
	settings, err := w.AreaSettings(areaNum)
	if err != nil {
		return false
	}
	if settings.AreaFlags&aasfile.AreaLadder == 0 {
		return false
	}
	if settings.Presencetype&aasfile.PresenceNormal == 0 {
		return false
	}

	area := w.file.Areas[areaNum]
	for i := int32(0); i < area.NumFaces; i++ {
		faceNum := w.file.FaceIndex[area.FirstFace+i]
		f := faceNum
		if f < 0 {
			f = -f
		}
		face := w.file.Faces[f]
		if face.Flags&aasfile.FaceLadder == 0 {
			continue
		}
		plane := w.file.Planes[face.PlaneNum]
		normal := d3.NewVec3XYZ(plane.Normal[0], plane.Normal[1], plane.Normal[2])
		if math32.Abs(normal.Dot(point)-plane.Dist) >= ladderPlaneTolerance {
			continue
		}
		if w.PointInsideFace(f, point, 0.1) {
			return true
		}
	}
	return false
}

// onGroundSlopeCosine and onGroundDropLimit bound what counts as standing
// ground rather than a slope too steep or a drop too far to be supporting.
const (
	onGroundSlopeCosine = 0.7
	onGroundDropLimit   = 10
)

// OnGround reports whether a presence-sized box at origin is resting on
// a walkable surface: a 10-unit downward trace must not start in solid,
// must hit within the drop limit, and the hit normal's Z component must
// be at least the slope cosine (roughly a 45-degree limit).
func (w *World) OnGround(origin d3.Vec3, presence Presence) bool {
	down := origin.Sub(d3.NewVec3XYZ(0, 0, onGroundDropLimit))
	tr := w.TraceClientBBox(origin, down, presence, -1)
	if tr.StartSolid || tr.Fraction >= 1 {
		return false
	}
	return tr.PlaneNormal[2] >= onGroundSlopeCosine
}

// Swimming reports whether origin is inside liquid, sampled 2 units below
// it as the reduced botlib does.
func (w *World) Swimming(origin d3.Vec3) bool {
	probe := origin.Sub(d3.NewVec3XYZ(0, 0, 2))
	areaNum := w.PointAreaNum(probe)
	if areaNum == 0 {
		return false
	}
	settings, err := w.AreaSettings(areaNum)
	if err != nil {
		return false
	}
	const liquid = aasfile.ContentsWater | aasfile.ContentsSlime | aasfile.ContentsLava
	return settings.Contents&liquid != 0
}

// reachabilityProbe offsets, horizontal (x8) and vertical (x12), used by
// PointReachabilityAreaNum's cross search.
var reachabilityProbeDirs = [6]d3.Vec3{
	d3.NewVec3XYZ(1, 0, 0),
	d3.NewVec3XYZ(-1, 0, 0),
	d3.NewVec3XYZ(0, 1, 0),
	d3.NewVec3XYZ(0, -1, 0),
	d3.NewVec3XYZ(0, 0, 1),
	d3.NewVec3XYZ(0, 0, -1),
}

// PointReachabilityAreaNum returns the area containing origin, preferring
// one with at least one outgoing reachability: if the direct lookup (after
// a 4-unit upward jitter) lands in an unreachable area, a small cross
// search of 10 samples along ±X/±Y/±Z is tried, each scaled 8 units
// horizontally or 12 vertically. The first reachable hit wins; if none is
// reachable, the first non-reachable area found is returned instead of 0.
func (w *World) PointReachabilityAreaNum(origin d3.Vec3) int32 {
	base := origin.Add(d3.NewVec3XYZ(0, 0, 4))
	first := w.PointAreaNum(base)
	if first != 0 && len(w.Reachabilities(first)) > 0 {
		return first
	}

	fallback := first
	samples := 0
	for step := 1; step <= 10 && samples < 10; step++ {
		for _, dir := range reachabilityProbeDirs {
			if samples >= 10 {
				break
			}
			scale := float32(8)
			if dir[2] != 0 {
				scale = 12
			}
			samples++
			p := base.Add(dir.Scale(scale * float32(step)))
			a := w.PointAreaNum(p)
			if a == 0 {
				continue
			}
			if len(w.Reachabilities(a)) > 0 {
				return a
			}
			if fallback == 0 {
				fallback = a
			}
		}
	}
	return fallback
}
