package move

import (
	"bytes"
	"testing"

	"github.com/aurelien-rainone/gogeo/f32/d3"
	"github.com/noire-dev/aas/aasfile"
	"github.com/noire-dev/aas/ea"
	"github.com/noire-dev/aas/route"
	"github.com/noire-dev/aas/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoAreaWorld builds a 200x200x64 box split in two by a plane at x=100:
// area 1 on the low side, area 2 on the high side, joined by a single WALK
// reachability crossing the split near floor height.
func twoAreaWorld(t *testing.T) *world.World {
	t.Helper()
	f := &aasfile.File{
		Planes: []aasfile.Plane{
			{Normal: [3]float32{1, 0, 0}, Dist: 100, Type: 0},
			{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: 2},
			{Normal: [3]float32{0, 0, 1}, Dist: 64, Type: 2},
		},
		Nodes: []aasfile.Node{
			{},
			{PlaneNum: 0, Children: [2]int32{3, 2}},
			{PlaneNum: 1, Children: [2]int32{4, 0}},
			{PlaneNum: 1, Children: [2]int32{5, 0}},
			{PlaneNum: 2, Children: [2]int32{0, -1}},
			{PlaneNum: 2, Children: [2]int32{0, -2}},
		},
		Areas: []aasfile.Area{{}, {}, {}},
		AreaSettings: []aasfile.AreaSettings{
			{},
			{Presencetype: aasfile.PresenceNormal | aasfile.PresenceCrouch, Cluster: 1, FirstReachableArea: 1, NumReachableAreas: 1},
			{Presencetype: aasfile.PresenceNormal | aasfile.PresenceCrouch, Cluster: 1, FirstReachableArea: 2, NumReachableAreas: 1},
		},
		Reachability: []aasfile.Reachability{
			{},
			{AreaNum: 2, Start: [3]float32{95, 50, 32}, End: [3]float32{105, 50, 32}, TravelType: int32(aasfile.TravelWalk), TravelTime: 100},
			{AreaNum: 1, Start: [3]float32{105, 50, 32}, End: [3]float32{95, 50, 32}, TravelType: int32(aasfile.TravelWalk), TravelTime: 100},
		},
	}
	buf, err := f.Encode()
	require.NoError(t, err)
	w, err := world.Load(bytes.NewReader(buf), 0)
	require.NoError(t, err)
	return w
}

func newTestMover(t *testing.T, w *world.World) (*Mover, int32) {
	t.Helper()
	router := route.InitRouting(w, nil)
	actions := ea.Setup(1)
	pool := NewPool(1)
	handle, err := pool.Alloc()
	require.NoError(t, err)
	pool.Init(handle, 0, 0)
	mv := NewMover(w, router, actions, pool, nil, nil)
	return mv, handle
}

func TestSpeedRampClampsAtEnds(t *testing.T) {
	assert.EqualValues(t, 20, speedRamp(-5, 0, 100, 20, 200))
	assert.EqualValues(t, 200, speedRamp(500, 0, 100, 20, 200))
	assert.EqualValues(t, 110, speedRamp(50, 0, 100, 20, 200))
}

func TestDirToAnglesFacingPlusX(t *testing.T) {
	angles := dirToAngles(d3.NewVec3XYZ(1, 0, 0))
	assert.InDelta(t, 0, angles[1], 0.01)
	assert.InDelta(t, 0, angles[0], 0.01)
}

func TestMoveToGoalInSameAreaDrivesTowardGoalOrigin(t *testing.T) {
	w := twoAreaWorld(t)
	mv, handle := newTestMover(t, w)

	st := mv.Pool.Get(handle)
	st.Origin = d3.NewVec3XYZ(10, 10, 32)
	st.Presence = world.PresenceNormal

	res := mv.MoveToGoal(handle, 1, [3]float32{50, 10, 32})
	assert.False(t, res.Failure)

	in, err := mv.Actions.GetInput(0)
	require.NoError(t, err)
	assert.NotZero(t, in.ActionFlags&ea.ActionMoveForward)
}

func TestMoveToGoalRoutesAcrossWalkReachability(t *testing.T) {
	w := twoAreaWorld(t)
	mv, handle := newTestMover(t, w)

	st := mv.Pool.Get(handle)
	st.Origin = d3.NewVec3XYZ(10, 50, 32)
	st.Presence = world.PresenceNormal

	res := mv.MoveToGoal(handle, 2, [3]float32{150, 50, 32})
	assert.False(t, res.Failure)
	assert.Equal(t, aasfile.TravelWalk, res.TravelType)

	st2 := mv.Pool.Get(handle)
	assert.EqualValues(t, 1, st2.ReachAreaNum)
	assert.NotZero(t, st2.LastReachNum)
}

func TestMoveToGoalFailsWhenOriginIsOutsideTheWorld(t *testing.T) {
	w := twoAreaWorld(t)
	mv, handle := newTestMover(t, w)

	st := mv.Pool.Get(handle)
	st.Origin = d3.NewVec3XYZ(10, 10, -100)
	st.Presence = world.PresenceNormal

	res := mv.MoveToGoal(handle, 2, [3]float32{150, 50, 32})
	assert.True(t, res.Failure)
	assert.Equal(t, FailureInSolidArea, res.FailureReason)
}

func TestBotReachabilityTimeTable(t *testing.T) {
	assert.EqualValues(t, 10, BotReachabilityTime(aasfile.TravelJumpPad))
	assert.EqualValues(t, 6, BotReachabilityTime(aasfile.TravelLadder))
	assert.EqualValues(t, 5, BotReachabilityTime(aasfile.TravelWalk))
	assert.EqualValues(t, 8, BotReachabilityTime(aasfile.TravelElevator))
}

func TestHandleWalkSetsForwardSpeed(t *testing.T) {
	w := twoAreaWorld(t)
	mv, handle := newTestMover(t, w)
	st := mv.Pool.Get(handle)
	st.Origin = d3.NewVec3XYZ(10, 50, 32)
	st.Presence = world.PresenceNormal

	reach := aasfile.Reachability{AreaNum: 2, Start: [3]float32{95, 50, 32}, End: [3]float32{105, 50, 32}, TravelType: int32(aasfile.TravelWalk)}
	res := handleWalk(mv, st, reach)
	assert.Equal(t, aasfile.TravelWalk, res.TravelType)

	in, err := mv.Actions.GetInput(0)
	require.NoError(t, err)
	assert.NotZero(t, in.Speed)
}

func TestPoolAllocExhaustion(t *testing.T) {
	p := NewPool(1)
	_, err := p.Alloc()
	require.NoError(t, err)
	_, err = p.Alloc()
	assert.Error(t, err)
}

func TestPoolGetPanicsOnUnallocatedHandle(t *testing.T) {
	p := NewPool(1)
	assert.Panics(t, func() { p.Get(0) })
}
