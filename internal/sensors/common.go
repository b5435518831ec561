package sensors

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

type Sensor interface {
	GetId() string

	// GetValue returns the current temperature in °C
	GetValue() (float64, error)
}

func NewSensors(paths []string) []Sensor {
	result := make([]Sensor, 0, len(paths))
	for _, path := range paths {
		result = append(result, NewFileSensor(path))
	}
	return result
}

// Readings holds the latest successful value of each sensor, keyed by sensor id.
// It is shared between the control loop and the statistics collectors.
type Readings struct {
	values cmap.ConcurrentMap[string, float64]
}

func NewReadings() *Readings {
	return &Readings{values: cmap.New[float64]()}
}

func (r *Readings) Set(id string, value float64) {
	r.values.Set(id, value)
}

func (r *Readings) Get(id string) (float64, bool) {
	return r.values.Get(id)
}

func (r *Readings) Items() map[string]float64 {
	return r.values.Items()
}

// Clear drops all values, used when a new configuration replaces the sensor list
func (r *Readings) Clear() {
	r.values.Clear()
}

// ReadTemperature probes every sensor and returns the highest value.
// A failing sensor is skipped, ok is false when no sensor yielded a value.
func ReadTemperature(list []Sensor, readings *Readings) (result float64, ok bool) {
	for _, sensor := range list {
		value, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Unable to read sensor %s: %v", sensor.GetId(), err)
			continue
		}
		if readings != nil {
			readings.Set(sensor.GetId(), value)
		}
		if !ok || value > result {
			result = value
			ok = true
		}
	}
	if !ok {
		ui.Error("No temperature sensor returned a valid value")
	}
	return result, ok
}
