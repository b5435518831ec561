package configuration

import (
	"time"
)

const (
	DefaultConfigPath = "/etc/pwmfan_config.json"

	DefaultPwmChipPath    = "/sys/class/pwm/pwmchip0"
	DefaultPwmPath        = "/sys/class/pwm/pwmchip0/pwm0"
	DefaultThermalPath    = "/sys/class/thermal"
	DefaultTempSensorPath = DefaultThermalPath + "/thermal_zone0/temp"
	DefaultInterval       = 10
	DefaultLogLevel       = "WARNING"
	DefaultVerbose        = true

	DefaultStatisticsPort = 9000
)

// Configuration is the resolved configuration of one control loop generation.
type Configuration struct {
	PwmChipPath     string           `json:"pwm_chip_path"`
	PwmPath         string           `json:"pwm_path"`
	TempSensorPaths []string         `json:"temp_sensor_paths"`
	Interval        int              `json:"interval"`
	Verbose         bool             `json:"verbose"`
	LogLevel        string           `json:"log_level"`
	Curve           []CurveRule      `json:"temperature_to_duty"`
	Statistics      StatisticsConfig `json:"statistics"`
}

// DefaultConfiguration returns the base defaults, without any hardware specific adjustments
func DefaultConfiguration() Configuration {
	return Configuration{
		PwmChipPath:     DefaultPwmChipPath,
		PwmPath:         DefaultPwmPath,
		TempSensorPaths: []string{DefaultTempSensorPath},
		Interval:        DefaultInterval,
		Verbose:         DefaultVerbose,
		LogLevel:        DefaultLogLevel,
		Curve:           DefaultCurve(),
		Statistics: StatisticsConfig{
			Enabled: false,
			Port:    DefaultStatisticsPort,
		},
	}
}

func (c Configuration) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
