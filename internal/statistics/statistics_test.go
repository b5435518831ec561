package statistics

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
)

type MockController struct {
	Stats controller.Statistics
}

func (c MockController) Run(ctx context.Context) error {
	return nil
}

func (c MockController) GetStatistics() controller.Statistics {
	return c.Stats
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(MockController{Stats: controller.Statistics{
		State:            controller.StateReady,
		PwmPath:          "/pwm0",
		Period:           40000,
		Duty:             30,
		Temperature:      56.5,
		TemperatureValid: true,
		TemperatureMin:   50,
		TemperatureAvg:   53,
		TemperatureMax:   56.5,
		Reloads:          2,
	}})

	expected := `
# HELP pwmfan_controller_duty_percent Last duty cycle applied to the channel, -1 if none
# TYPE pwmfan_controller_duty_percent gauge
pwmfan_controller_duty_percent{pwm="/pwm0"} 30
# HELP pwmfan_controller_config_reloads_total Number of configuration reloads
# TYPE pwmfan_controller_config_reloads_total counter
pwmfan_controller_config_reloads_total 2
# HELP pwmfan_controller_state Current state of the control loop, 1 for the active state
# TYPE pwmfan_controller_state gauge
pwmfan_controller_state{pwm="/pwm0",state="DEGRADED"} 0
pwmfan_controller_state{pwm="/pwm0",state="READY"} 1
pwmfan_controller_state{pwm="/pwm0",state="TERMINATED"} 0
pwmfan_controller_state{pwm="/pwm0",state="UNINITIALIZED"} 0
# HELP pwmfan_controller_temperature_window_max_celsius Highest control temperature of the recent window
# TYPE pwmfan_controller_temperature_window_max_celsius gauge
pwmfan_controller_temperature_window_max_celsius 56.5
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"pwmfan_controller_duty_percent",
		"pwmfan_controller_config_reloads_total",
		"pwmfan_controller_state",
		"pwmfan_controller_temperature_window_max_celsius",
	)

	// THEN
	assert.NoError(t, err)
}

func TestControllerCollector_WithoutTemperature(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(MockController{Stats: controller.Statistics{
		State: controller.StateUninitialized,
	}})

	// WHEN
	count := testutil.CollectAndCount(collector, "pwmfan_controller_temperature_celsius")

	// THEN
	assert.Equal(t, 0, count)
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	readings := sensors.NewReadings()
	readings.Set("/zone0", 48.25)
	readings.Set("/zone1", 51)
	collector := NewSensorCollector(readings)

	expected := `
# HELP pwmfan_sensor_temperature_celsius Last successful reading of the sensor
# TYPE pwmfan_sensor_temperature_celsius gauge
pwmfan_sensor_temperature_celsius{id="/zone0"} 48.25
pwmfan_sensor_temperature_celsius{id="/zone1"} 51
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}

func TestRegister(t *testing.T) {
	// GIVEN
	registry := NewRegistry()

	// WHEN
	Register(registry, NewSensorCollector(sensors.NewReadings()))

	// THEN
	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
