package world

import (
	"fmt"
	"io"

	"github.com/noire-dev/aas/aasfile"
)

// EntityCollider is the subset of the host's collision services the
// Sampler needs to account for entities linked into an area but not part
// of the static BSP: a single-entity trace. Implementations typically
// wrap the host's EntityTrace import.
type EntityCollider interface {
	// EntityCollision traces a box from start to end against ent alone and
	// reports the fraction of the segment completed before contact (1 if
	// none). contentMask restricts which ent contents block the trace.
	EntityCollision(start, mins, maxs, end [3]float32, ent int32, contentMask int32) (fraction float32, hit bool)
}

// World is the immutable spatial database loaded from a single .aas file:
// vertices, planes, edges, faces, areas, area settings, the BSP, clusters,
// portals and reachabilities. It answers the Sampler's point/trace queries
// (PointAreaNum, TraceClientBBox, TraceAreas, ...); Router and Mover build
// on top of it but never mutate it.
type World struct {
	file *aasfile.File

	links *LinkHeap

	// Entities provides the entity-in-area collision shim used by
	// TraceClientBBox. It is nil until set by the host via SetEntityCollider;
	// a nil Entities means area-linked entities never block a trace, which
	// is an acceptable degraded mode for geometry-only queries (e.g. the
	// CLI) but not for a live bot.
	Entities EntityCollider
}

// Load decodes an AAS file from r and builds the runtime World. linkHeapSize
// is the capacity of the entity-link pool (0 selects the 6144-node default).
func Load(r io.ReadSeeker, linkHeapSize int) (*World, error) {
	f, err := aasfile.Decode(r)
	if err != nil {
		return nil, err
	}
	if linkHeapSize <= 0 {
		linkHeapSize = DefaultLinkHeapSize
	}
	w := &World{
		file:  f,
		links: NewLinkHeap(linkHeapSize, len(f.Areas)),
	}
	return w, nil
}

// SetEntityCollider installs the host's entity collision shim.
func (w *World) SetEntityCollider(c EntityCollider) { w.Entities = c }

// File exposes the raw decoded lumps for callers (e.g. the Router) that
// need direct array access rather than the Sampler's derived queries.
func (w *World) File() *aasfile.File { return w.file }

// Links exposes the entity-in-area link pool.
func (w *World) Links() *LinkHeap { return w.links }

// NumAreas returns the number of areas, including the unused area 0.
func (w *World) NumAreas() int32 { return int32(len(w.file.Areas)) }

// AreaSettings returns the settings record for areaNum, or an error if out
// of range. This is a configuration-error class query per the error
// taxonomy: callers that pass a bad handle get a zero value and an error,
// never a panic.
func (w *World) AreaSettings(areaNum int32) (aasfile.AreaSettings, error) {
	if areaNum <= 0 || int(areaNum) >= len(w.file.AreaSettings) {
		return aasfile.AreaSettings{}, fmt.Errorf("world: area number %d out of range [1,%d)", areaNum, len(w.file.AreaSettings))
	}
	return w.file.AreaSettings[areaNum], nil
}

// AreaPresenceType returns the presence-type bitmask of areaNum (0 if out
// of range).
func (w *World) AreaPresenceType(areaNum int32) int32 {
	s, err := w.AreaSettings(areaNum)
	if err != nil {
		return 0
	}
	return s.Presencetype
}

// Reachabilities returns the slice of reachabilities leaving areaNum.
func (w *World) Reachabilities(areaNum int32) []aasfile.Reachability {
	s, err := w.AreaSettings(areaNum)
	if err != nil || s.NumReachableAreas == 0 {
		return nil
	}
	first := s.FirstReachableArea
	n := s.NumReachableAreas
	if int(first+n) > len(w.file.Reachability) {
		return nil
	}
	return w.file.Reachability[first : first+n]
}

// vertex returns vertex i as a 3-float array, a view into the flat Verts
// slice the same way detour.MeshTile.Verts is sliced per-vertex.
func (w *World) vertex(i int32) [3]float32 {
	o := i * 3
	return [3]float32{w.file.Verts[o], w.file.Verts[o+1], w.file.Verts[o+2]}
}
