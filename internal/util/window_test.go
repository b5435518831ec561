package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingWindow_Max(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := window.Max()

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestRollingWindow_PartiallyFilled(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(10)
	window.Append(50)
	window.Append(60)

	// THEN
	assert.Equal(t, 2, window.Len())
	assert.Equal(t, 50.0, window.Min())
	assert.Equal(t, 55.0, window.Avg())
	assert.Equal(t, 60.0, window.Max())
}

func TestRollingWindow_DropsOldestValue(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(90)
	window.Append(40)
	window.Append(45)

	// THEN
	assert.Equal(t, 2, window.Len())
	assert.Equal(t, 45.0, window.Max())
	assert.Equal(t, 40.0, window.Min())
}

func TestRollingWindow_Empty(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(5)

	// THEN
	assert.Equal(t, 0, window.Len())
	assert.Equal(t, 0.0, window.Avg())
}
