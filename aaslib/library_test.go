package aaslib

import (
	"testing"

	"github.com/noire-dev/aas/goal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupBeforeUseFails(t *testing.T) {
	lib := NewLibrary()
	s := lib.StartFrame(0)
	assert.True(t, StatusFailed(s))
}

func TestSetupLoadMapAndQuery(t *testing.T) {
	imp := newFakeImport()
	f := oneAreaFile()
	buf, err := f.Encode()
	require.NoError(t, err)
	imp.files["test.aas"] = buf

	lib := NewLibrary()
	require.True(t, StatusSucceed(lib.Setup(imp, DefaultSettings())))
	require.True(t, StatusSucceed(lib.LoadMap("test.aas")))

	assert.True(t, lib.AAS().Initialized())
	area := lib.AAS().PointAreaNum([3]float32{0, 0, 32})
	assert.EqualValues(t, 1, area)
}

func TestLoadMapRejectsMissingFile(t *testing.T) {
	imp := newFakeImport()
	lib := NewLibrary()
	require.True(t, StatusSucceed(lib.Setup(imp, DefaultSettings())))
	s := lib.LoadMap("missing.aas")
	assert.True(t, StatusFailed(s))
}

func TestUpdateEntityRejectsOutOfRange(t *testing.T) {
	imp := newFakeImport()
	lib := NewLibrary()
	settings := DefaultSettings()
	settings.MaxEntities = 4
	require.True(t, StatusSucceed(lib.Setup(imp, settings)))

	s := lib.UpdateEntity(10, EntityState{})
	assert.True(t, StatusFailed(s))
	assert.Equal(t, Status(Failure|InvalidEntityNumber), s)
}

func TestAllocAndTouchingGoal(t *testing.T) {
	imp := newFakeImport()
	f := oneAreaFile()
	buf, err := f.Encode()
	require.NoError(t, err)
	imp.files["test.aas"] = buf

	lib := NewLibrary()
	require.True(t, StatusSucceed(lib.Setup(imp, DefaultSettings())))
	require.True(t, StatusSucceed(lib.LoadMap("test.aas")))

	handle, err := lib.AI().AllocMoveState()
	require.NoError(t, err)
	lib.AI().InitMoveState(handle, InitMove{Origin: [3]float32{0, 0, 32}, Client: 0, PresenceType: int32(1)})

	g := goal.Goal{AreaNum: 1, Origin: [3]float32{0, 0, 32}, Mins: [3]float32{-16, -16, -16}, Maxs: [3]float32{16, 16, 16}}
	assert.True(t, lib.AI().TouchingGoal([3]float32{0, 0, 32}, g))
}

func TestDefaultSettingsMatchLibvarDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 128, s.MaxClients)
	assert.Equal(t, 4096, s.MaxEntities)
}
