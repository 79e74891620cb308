package world

import "fmt"

// DefaultLinkHeapSize is the default capacity of the entity-in-area link
// pool, matching the reduced botlib's AAS_InitAASLinkHeap default.
const DefaultLinkHeapSize = 6144

const nullLink int32 = -1

type areaLink struct {
	entNum   int32
	areaNum  int32
	prevArea int32 // previous link in the same area's list, or nullLink
	nextArea int32 // next link in the same area's list, or nullLink
	nextFree int32 // next free slot, or nullLink (only meaningful while unused)
}

// LinkHeap is a fixed-size pool of entity-in-area link nodes threaded by a
// free list: entities touching an area are inserted into that area's list
// by popping a node off the free head; removal pushes the node back. Exhaustion is a
// capacity error (Link returns an error and the new linkage is not
// stored; the pool never grows), not a panic.
type LinkHeap struct {
	links    []areaLink
	freeHead int32
	areaHead []int32 // per-area head index into links, or nullLink
}

// NewLinkHeap allocates a link pool of the given capacity, able to serve
// numAreas distinct per-area lists.
func NewLinkHeap(capacity, numAreas int) *LinkHeap {
	h := &LinkHeap{
		links:    make([]areaLink, capacity),
		areaHead: make([]int32, numAreas),
	}
	for i := range h.areaHead {
		h.areaHead[i] = nullLink
	}
	for i := range h.links {
		h.links[i].nextFree = int32(i) + 1
	}
	if capacity > 0 {
		h.links[capacity-1].nextFree = nullLink
	} else {
		h.freeHead = nullLink
	}
	return h
}

// Link adds entNum to areaNum's list and returns the handle to later pass
// to Unlink. An error indicates the pool is exhausted.
func (h *LinkHeap) Link(entNum, areaNum int32) (int32, error) {
	if h.freeHead == nullLink {
		return nullLink, fmt.Errorf("world: link heap exhausted (capacity %d)", len(h.links))
	}
	if int(areaNum) < 0 || int(areaNum) >= len(h.areaHead) {
		return nullLink, fmt.Errorf("world: area number %d out of range", areaNum)
	}

	idx := h.freeHead
	h.freeHead = h.links[idx].nextFree

	old := h.areaHead[areaNum]
	h.links[idx] = areaLink{
		entNum:   entNum,
		areaNum:  areaNum,
		prevArea: nullLink,
		nextArea: old,
	}
	if old != nullLink {
		h.links[old].prevArea = idx
	}
	h.areaHead[areaNum] = idx
	return idx, nil
}

// Unlink removes a previously linked handle, returning its slot to the
// free list.
func (h *LinkHeap) Unlink(handle int32) {
	if handle == nullLink || int(handle) >= len(h.links) {
		return
	}
	l := h.links[handle]
	if l.prevArea != nullLink {
		h.links[l.prevArea].nextArea = l.nextArea
	} else {
		h.areaHead[l.areanumOrZero()] = l.nextArea
	}
	if l.nextArea != nullLink {
		h.links[l.nextArea].prevArea = l.prevArea
	}
	h.links[handle] = areaLink{nextFree: h.freeHead}
	h.freeHead = handle
}

func (l areaLink) areanumOrZero() int32 { return l.areaNum }

// EntitiesInArea returns the entity numbers currently linked into areaNum.
func (h *LinkHeap) EntitiesInArea(areaNum int32) []int32 {
	if int(areaNum) < 0 || int(areaNum) >= len(h.areaHead) {
		return nil
	}
	var out []int32
	for idx := h.areaHead[areaNum]; idx != nullLink; idx = h.links[idx].nextArea {
		out = append(out, h.links[idx].entNum)
	}
	return out
}
