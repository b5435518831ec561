package sensors

import (
	"path/filepath"
	"sort"

	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const DefaultThermalClassPath = "/sys/class/thermal"

// ThermalZone is a kernel thermal zone, i.e. /sys/class/thermal/thermal_zone0
type ThermalZone struct {
	Path     string
	Type     string
	TempPath string
	// Value in °C, only set when Valid
	Value float64
	Valid bool
}

func FindThermalZones(classPath string) []ThermalZone {
	zones, _ := filepath.Glob(filepath.Join(classPath, "thermal_zone*"))
	sort.Strings(zones)

	var result []ThermalZone
	for _, zone := range zones {
		tempPath := filepath.Join(zone, "temp")
		value, err := NewFileSensor(tempPath).GetValue()
		result = append(result, ThermalZone{
			Path:     zone,
			Type:     util.ReadValueOr(filepath.Join(zone, "type"), "-"),
			TempPath: tempPath,
			Value:    value,
			Valid:    err == nil,
		})
	}
	return result
}
