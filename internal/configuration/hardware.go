package configuration

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	DefaultModelPath = "/sys/firmware/devicetree/base/model"

	raspberryPi5 = "Raspberry Pi 5"
	// number of thermal zones probed on boards with multiple sensors
	multiZoneCount = 3
)

// DetectModel returns the device tree model string, or "" if it cannot be determined
func DetectModel(modelPath string) string {
	value, err := util.ReadValue(modelPath)
	if err != nil {
		ui.Debug("Unable to detect board model: %v", err)
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
}

func IsRaspberryPi5(model string) bool {
	return strings.Contains(model, raspberryPi5)
}

// thermalZoneCandidates returns the sensor paths of all zones probed on multi sensor boards
func thermalZoneCandidates(thermalPath string) []string {
	result := make([]string, 0, multiZoneCount)
	for i := 0; i < multiZoneCount; i++ {
		result = append(result, filepath.Join(thermalPath, fmt.Sprintf("thermal_zone%d", i), "temp"))
	}
	return result
}

// hardwareDefaults adjusts the base defaults to the detected board
func hardwareDefaults(model string, thermalPath string) Configuration {
	config := DefaultConfiguration()
	config.TempSensorPaths = []string{filepath.Join(thermalPath, "thermal_zone0", "temp")}

	switch {
	case IsRaspberryPi5(model):
		ui.Info("Detected Raspberry Pi 5, adjusting default temperature sensors")
		var existing []string
		for _, candidate := range thermalZoneCandidates(thermalPath) {
			if util.PathExists(candidate) {
				existing = append(existing, candidate)
			}
		}
		if len(existing) > 0 {
			config.TempSensorPaths = existing
			ui.Info("Using Raspberry Pi 5 default temperature sensors: %v", existing)
		} else {
			ui.Warning("Detected Raspberry Pi 5, but could not find the expected thermal zones, using base default")
		}
	case model != "":
		ui.Info("Detected %s, using standard default temperature sensor", model)
	default:
		ui.Info("Could not detect board model, using standard default settings")
	}
	return config
}

// WarnAboutFirmwareControl prints a hint when the fan of the board might
// already be driven by its firmware. Returns true if the hint was printed.
func WarnAboutFirmwareControl(model string, thermalPath string, config Configuration) bool {
	if !IsRaspberryPi5(model) || !hasMultipleZones(thermalPath, config.TempSensorPaths) {
		return false
	}
	ui.Warning("Multiple thermal zones detected on %s", model)
	ui.Warning("If you are using the official Active Cooler, fan control might be handled by the firmware. " +
		"Check 'dtparam=cooling_fan' in config.txt to avoid both fighting over the same fan.")
	return true
}

func hasMultipleZones(thermalPath string, sensorPaths []string) bool {
	if len(sensorPaths) > 1 {
		return true
	}
	for _, path := range sensorPaths {
		if strings.Contains(path, "thermal_zone1") {
			return true
		}
	}
	return util.PathExists(filepath.Join(thermalPath, "thermal_zone1"))
}
