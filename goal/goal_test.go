package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTouchingGoalInsideVolume(t *testing.T) {
	g := Goal{Origin: [3]float32{0, 0, 0}, Mins: [3]float32{-16, -16, -16}, Maxs: [3]float32{16, 16, 16}}
	assert.True(t, TouchingGoal([3]float32{0, 0, 0}, g, DefaultConfig()))
}

func TestTouchingGoalJustOutside(t *testing.T) {
	g := Goal{Origin: [3]float32{0, 0, 0}, Mins: [3]float32{-16, -16, -16}, Maxs: [3]float32{16, 16, 16}}
	// contracted maxs.x = 16 - (-15) + 0 = 31; just past it should miss.
	assert.False(t, TouchingGoal([3]float32{32, 0, 0}, g, DefaultConfig()))
	assert.True(t, TouchingGoal([3]float32{30, 0, 0}, g, DefaultConfig()))
}

func TestTouchingGoalSafetyShrinksVolume(t *testing.T) {
	g := Goal{Origin: [3]float32{0, 0, 0}, Mins: [3]float32{-16, -16, -16}, Maxs: [3]float32{16, 16, 16}}
	cfg := Config{SafetyMaxs: [3]float32{4, 4, 10}, SafetyMins: [3]float32{-4, -4, 0}}
	assert.True(t, TouchingGoal([3]float32{29, 0, 0}, g, DefaultConfig()))
	assert.False(t, TouchingGoal([3]float32{29, 0, 0}, g, cfg))
}
