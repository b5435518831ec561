package sensors

import (
	"fmt"

	"github.com/pwmfan/pwmfan-controller/internal/util"
)

// FileSensor reads a sysfs thermal attribute holding milli-degrees Celsius,
// i.e. /sys/class/thermal/thermal_zone0/temp
type FileSensor struct {
	Path string
}

func NewFileSensor(path string) Sensor {
	return &FileSensor{Path: path}
}

func (sensor FileSensor) GetId() string {
	return sensor.Path
}

func (sensor FileSensor) GetValue() (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Path)
	if err != nil {
		return 0, fmt.Errorf("unable to read temperature: %w", err)
	}
	return float64(integer) / 1000, nil
}
