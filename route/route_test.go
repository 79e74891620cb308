package route

import (
	"testing"

	"github.com/noire-dev/aas/aasfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorld is a minimal route.World fixture: three areas in a single
// cluster, chained area1->area2->area3 by WALK reachabilities plus a WALK
// back link area3->area2, with no portals (same-cluster routing only).
type fakeWorld struct {
	file  *aasfile.File
	reach map[int32][]aasfile.Reachability
}

func (w *fakeWorld) NumAreas() int32 { return int32(len(w.file.AreaSettings)) }
func (w *fakeWorld) Reachabilities(area int32) []aasfile.Reachability {
	return w.reach[area]
}
func (w *fakeWorld) File() *aasfile.File { return w.file }
func (w *fakeWorld) TraceAreasBetween(start, end [3]float32, maxAreas int) []int32 { return nil }

func chainWorld() *fakeWorld {
	f := &aasfile.File{
		AreaSettings: []aasfile.AreaSettings{
			{},
			{Cluster: 1, NumReachableAreas: 1},
			{Cluster: 1, NumReachableAreas: 1},
			{Cluster: 1, NumReachableAreas: 1},
		},
		Clusters: []aasfile.Cluster{{}, {NumAreas: 3}},
	}
	reach := map[int32][]aasfile.Reachability{
		1: {{AreaNum: 2, Start: [3]float32{10, 0, 0}, End: [3]float32{20, 0, 0}, TravelType: int32(aasfile.TravelWalk), TravelTime: 100}},
		2: {{AreaNum: 3, Start: [3]float32{30, 0, 0}, End: [3]float32{40, 0, 0}, TravelType: int32(aasfile.TravelWalk), TravelTime: 150}},
		3: {{AreaNum: 2, Start: [3]float32{40, 0, 0}, End: [3]float32{30, 0, 0}, TravelType: int32(aasfile.TravelWalk), TravelTime: 150}},
	}
	return &fakeWorld{file: f, reach: reach}
}

func TestRouteSameAreaIsGoal(t *testing.T) {
	w := chainWorld()
	r := InitRouting(w, nil)
	res, ok := r.Route(2, [3]float32{0, 0, 0}, 2, nil)
	require.True(t, ok)
	assert.EqualValues(t, 1, res.Time)
}

func TestRouteWithinClusterFindsNextHop(t *testing.T) {
	w := chainWorld()
	r := InitRouting(w, nil)
	res, ok := r.Route(1, [3]float32{0, 0, 0}, 3, nil)
	require.True(t, ok)
	assert.EqualValues(t, 2, res.Reach.AreaNum)
	assert.GreaterOrEqual(t, res.Time, uint16(1))
}

func TestRouteRejectsWhenFlagExcluded(t *testing.T) {
	w := chainWorld()
	r := InitRouting(w, nil)
	f := NewStandardFilter()
	f.SetExcludeFlags(TFLWalk)
	_, ok := r.Route(1, [3]float32{0, 0, 0}, 3, f)
	assert.False(t, ok)
}

func TestRouteOutOfRangeAreaFails(t *testing.T) {
	w := chainWorld()
	r := InitRouting(w, nil)
	_, ok := r.Route(99, [3]float32{}, 2, nil)
	assert.False(t, ok)
}

func TestTravelTimeFloorsAtOne(t *testing.T) {
	assert.EqualValues(t, 1, travelTime(0, float32(SpeedFactorWalk)))
	assert.EqualValues(t, 1, travelTime(0.001, float32(SpeedFactorWalk)))
}

func TestCreateReversedReachabilityLinksBack(t *testing.T) {
	w := chainWorld()
	reversed := createReversedReachability(w, nil)
	require.Len(t, reversed[2], 2)
	assert.EqualValues(t, 1, reversed[2][0].sourceArea)
	assert.EqualValues(t, 3, reversed[2][1].sourceArea)
	require.Len(t, reversed[3], 1)
	assert.EqualValues(t, 2, reversed[3][0].sourceArea)
}

func TestStandardFilterAllowed(t *testing.T) {
	f := NewStandardFilter()
	assert.True(t, f.Allowed(TFLWalk))
	assert.False(t, f.Allowed(TFLInvalid))
}
