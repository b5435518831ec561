package fans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const untouched = "untouched"

func createPwmChannel(t *testing.T, enable string, period string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pwmchip0", "pwm0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enable"), []byte(enable+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "period"), []byte(period+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "duty_cycle"), []byte(untouched), 0o644))
	return dir
}

func readDutyCycle(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "duty_cycle"))
	require.NoError(t, err)
	return string(data)
}

func TestPwmFan_GetId(t *testing.T) {
	// GIVEN
	fan := NewPwmFan("/sys/class/pwm/pwmchip0/pwm0")

	// WHEN
	result := fan.GetId()

	// THEN
	assert.Equal(t, "/sys/class/pwm/pwmchip0/pwm0", result)
}

func TestPwmFan_IsEnabled(t *testing.T) {
	tests := []struct {
		name   string
		enable string
		want   bool
	}{
		{name: "enabled", enable: "1", want: true},
		{name: "disabled", enable: "0", want: false},
		{name: "garbage", enable: "yes", want: false},
		{name: "empty", enable: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			fan := NewPwmFan(createPwmChannel(t, tt.enable, "40000"))

			// WHEN
			result := fan.IsEnabled()

			// THEN
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestPwmFan_IsEnabled_MissingChannel(t *testing.T) {
	// GIVEN
	fan := NewPwmFan(filepath.Join(t.TempDir(), "pwm7"))

	// WHEN
	result := fan.IsEnabled()

	// THEN
	assert.False(t, result)
}

func TestPwmFan_ReadPeriod(t *testing.T) {
	// GIVEN
	fan := NewPwmFan(createPwmChannel(t, "1", "40000"))

	// WHEN
	period, err := fan.ReadPeriod()

	// THEN
	assert.NoError(t, err)
	assert.EqualValues(t, 40000, period)
}

func TestPwmFan_ReadPeriod_Invalid(t *testing.T) {
	for _, value := range []string{"0", "-10", "abc", ""} {
		t.Run(value, func(t *testing.T) {
			// GIVEN
			fan := NewPwmFan(createPwmChannel(t, "1", value))

			// WHEN
			period, err := fan.ReadPeriod()

			// THEN
			assert.ErrorIs(t, err, ErrInvalidPeriod)
			assert.EqualValues(t, -1, period)
		})
	}
}

func TestPwmFan_SetDutyCycle(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		period  int64
		want    string
	}{
		{name: "half", percent: 50, period: 40000, want: "20000"},
		{name: "rounded", percent: 33, period: 1001, want: "330"},
		{name: "clamped high", percent: 150, period: 40000, want: "40000"},
		{name: "clamped low", percent: -5, period: 40000, want: "0"},
		{name: "off", percent: 0, period: 40000, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			dir := createPwmChannel(t, "1", "40000")
			fan := NewPwmFan(dir)

			// WHEN
			applied := fan.SetDutyCycle(tt.percent, tt.period)

			// THEN
			assert.True(t, applied)
			assert.Equal(t, tt.want, readDutyCycle(t, dir))
		})
	}
}

func TestPwmFan_SetDutyCycle_NotEnabled(t *testing.T) {
	for _, percent := range []float64{0, 50, 100, 150} {
		// GIVEN
		dir := createPwmChannel(t, "0", "40000")
		fan := NewPwmFan(dir)

		// WHEN
		applied := fan.SetDutyCycle(percent, 40000)

		// THEN
		assert.False(t, applied)
		assert.Equal(t, untouched, readDutyCycle(t, dir))
	}
}

func TestPwmFan_SetDutyCycle_InvalidPeriod(t *testing.T) {
	// GIVEN
	dir := createPwmChannel(t, "1", "40000")
	fan := NewPwmFan(dir)

	// WHEN
	applied := fan.SetDutyCycle(50, -1)

	// THEN
	assert.False(t, applied)
	assert.Equal(t, untouched, readDutyCycle(t, dir))
}

func TestPwmFan_SetDutyCycle_WriteFailure(t *testing.T) {
	// GIVEN
	dir := createPwmChannel(t, "1", "40000")
	require.NoError(t, os.Remove(filepath.Join(dir, "duty_cycle")))
	fan := NewPwmFan(dir)

	// WHEN
	applied := fan.SetDutyCycle(50, 40000)

	// THEN
	assert.False(t, applied)
	assert.NoFileExists(t, filepath.Join(dir, "duty_cycle"))
}

func TestInitialize(t *testing.T) {
	// GIVEN
	fan := NewPwmFan(createPwmChannel(t, "1", "25000"))

	// WHEN
	period, err := Initialize(fan)

	// THEN
	assert.Nil(t, err)
	assert.EqualValues(t, 25000, period)
}

func TestInitialize_NotEnabled(t *testing.T) {
	// GIVEN
	fan := NewPwmFan(createPwmChannel(t, "0", "25000"))

	// WHEN
	period, err := Initialize(fan)

	// THEN
	require.NotNil(t, err)
	assert.EqualValues(t, -1, period)
	assert.Contains(t, err.Error(), "not enabled")
	assert.NotEmpty(t, err.Advice())
}

func TestInitialize_InvalidPeriod(t *testing.T) {
	// GIVEN
	fan := NewPwmFan(createPwmChannel(t, "1", "0"))

	// WHEN
	period, err := Initialize(fan)

	// THEN
	require.NotNil(t, err)
	assert.EqualValues(t, -1, period)
	assert.NotEmpty(t, err.Advice())
}
