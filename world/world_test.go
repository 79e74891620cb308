package world

import (
	"bytes"
	"testing"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/aasfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxWorld builds the single-area box map from scenario 1: a 200x200x64
// room, area 1, bounded below by the floor plane and above by the
// ceiling plane.
func boxWorld(t *testing.T) *World {
	t.Helper()
	f := &aasfile.File{
		Planes: []aasfile.Plane{
			{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: 2},
			{Normal: [3]float32{0, 0, 1}, Dist: 64, Type: 2},
		},
		Nodes: []aasfile.Node{
			{}, // index 0 unused
			{PlaneNum: 0, Children: [2]int32{2, 0}},
			{PlaneNum: 1, Children: [2]int32{0, -1}},
		},
		Areas:        []aasfile.Area{{}, {}},
		AreaSettings: []aasfile.AreaSettings{{}, {Presencetype: aasfile.PresenceNormal | aasfile.PresenceCrouch}},
	}
	buf, err := f.Encode()
	require.NoError(t, err)
	w, err := Load(bytes.NewReader(buf), 0)
	require.NoError(t, err)
	return w
}

func TestPointAreaNumBoxMap(t *testing.T) {
	w := boxWorld(t)
	assert.EqualValues(t, 1, w.PointAreaNum(d3.NewVec3XYZ(0, 0, 32)))
	assert.EqualValues(t, 0, w.PointAreaNum(d3.NewVec3XYZ(0, 0, -1)))
}

func TestPresenceBoundingBox(t *testing.T) {
	mins, maxs := PresenceBoundingBox(PresenceNormal)
	assert.Equal(t, d3.NewVec3XYZ(-15, -15, -24), mins)
	assert.Equal(t, d3.NewVec3XYZ(15, 15, 32), maxs)

	mins, maxs = PresenceBoundingBox(PresenceCrouch)
	assert.Equal(t, d3.NewVec3XYZ(-15, -15, -24), mins)
	assert.Equal(t, d3.NewVec3XYZ(15, 15, 8), maxs)

	assert.Panics(t, func() { PresenceBoundingBox(Presence(99)) })
}

func TestLinkHeapFreeListRoundTrip(t *testing.T) {
	h := NewLinkHeap(2, 3)
	h1, err := h.Link(10, 1)
	require.NoError(t, err)
	h2, err := h.Link(20, 1)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int32{20, 10}, h.EntitiesInArea(1))

	_, err = h.Link(30, 1)
	assert.Error(t, err, "pool of capacity 2 should be exhausted")

	h.Unlink(h1)
	h.Unlink(h2)
	assert.Empty(t, h.EntitiesInArea(1))

	_, err = h.Link(30, 1)
	assert.NoError(t, err, "slots should be reusable after Unlink")
}

func TestTraceClientBBoxStopsAtCeiling(t *testing.T) {
	w := boxWorld(t)
	tr := w.TraceClientBBox(d3.NewVec3XYZ(0, 0, 32), d3.NewVec3XYZ(0, 0, 200), PresenceNormal, -1)
	assert.Less(t, tr.Fraction, float32(1))
	assert.False(t, tr.StartSolid)
}

func TestTraceClientBBoxStartSolidBelowFloor(t *testing.T) {
	w := boxWorld(t)
	tr := w.TraceClientBBox(d3.NewVec3XYZ(0, 0, -10), d3.NewVec3XYZ(0, 0, 10), PresenceNormal, -1)
	assert.True(t, tr.StartSolid)
}

func TestOnGround(t *testing.T) {
	w := boxWorld(t)
	// the box's feet sit at origin z-24, so z=28 rests 4 units above the floor.
	assert.True(t, w.OnGround(d3.NewVec3XYZ(0, 0, 28), PresenceNormal))
	assert.False(t, w.OnGround(d3.NewVec3XYZ(0, 0, 40), PresenceNormal))
}
