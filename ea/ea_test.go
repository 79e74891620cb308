package ea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveProjectsOntoForwardWhenFacingDirection(t *testing.T) {
	b := Setup(1)
	require.NoError(t, b.View(0, [3]float32{0, 0, 0})) // facing +X
	require.NoError(t, b.Move(0, [3]float32{1, 0, 0}))
	in, err := b.GetInput(0)
	require.NoError(t, err)
	assert.NotZero(t, in.ActionFlags&ActionMoveForward)
	assert.Zero(t, in.ActionFlags&ActionMoveBack)
}

func TestMoveProjectsOntoRightWhenStrafing(t *testing.T) {
	b := Setup(1)
	require.NoError(t, b.View(0, [3]float32{0, 0, 0})) // facing +X
	require.NoError(t, b.Move(0, [3]float32{0, 1, 0}))
	in, err := b.GetInput(0)
	require.NoError(t, err)
	assert.NotZero(t, in.ActionFlags&ActionMoveRight)
}

func TestResetInputClearsFlagsNotView(t *testing.T) {
	b := Setup(1)
	require.NoError(t, b.View(0, [3]float32{0, 45, 0}))
	require.NoError(t, b.SetAction(0, ActionJump))
	require.NoError(t, b.ResetInput(0))
	in, err := b.GetInput(0)
	require.NoError(t, err)
	assert.Zero(t, in.ActionFlags)
	assert.EqualValues(t, 45, in.ViewAngles[1])
}

func TestSetSpeedRecordsValue(t *testing.T) {
	b := Setup(1)
	require.NoError(t, b.SetSpeed(0, 320))
	in, err := b.GetInput(0)
	require.NoError(t, err)
	assert.EqualValues(t, 320, in.Speed)
}

func TestOutOfRangeClientErrors(t *testing.T) {
	b := Setup(1)
	_, err := b.GetInput(5)
	assert.Error(t, err)
	assert.Error(t, b.Move(-1, [3]float32{}))
}
