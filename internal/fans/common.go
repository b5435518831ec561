package fans

import (
	"errors"
	"fmt"

	"github.com/sierrasoftworks/humane-errors-go"
)

const (
	MaxDutyPercent = 100
	MinDutyPercent = 0

	// EnabledMarker is the value of the "enable" attribute of a running channel
	EnabledMarker = "1"
)

var ErrInvalidPeriod = errors.New("invalid pwm period")

// Fan is a single PWM channel.
type Fan interface {
	GetId() string

	// IsEnabled reads the "enable" attribute, any failure reports false
	IsEnabled() bool

	// ReadPeriod returns the configured period in nanoseconds
	ReadPeriod() (int64, error)

	// SetDutyCycle applies the given percentage of period. It returns
	// whether a value was actually written to the channel.
	SetDutyCycle(percent float64, period int64) bool
}

// Initialize brings up the given fan and returns its period.
func Initialize(fan Fan) (int64, humane.Error) {
	if !fan.IsEnabled() {
		return -1, humane.New(
			fmt.Sprintf("PWM channel %s is not enabled", fan.GetId()),
			fmt.Sprintf("Export the channel via 'echo 0 > %s/../export' if it does not exist yet", fan.GetId()),
			fmt.Sprintf("Enable it via 'echo 1 > %s/enable'", fan.GetId()),
			"Make sure the pwm overlay is loaded (e.g. 'dtoverlay=pwm' in config.txt)",
		)
	}

	period, err := fan.ReadPeriod()
	if err != nil {
		return -1, humane.Wrap(err,
			fmt.Sprintf("Unable to read period of PWM channel %s", fan.GetId()),
			fmt.Sprintf("Set a period in nanoseconds, e.g. 'echo 40000 > %s/period'", fan.GetId()),
		)
	}
	return period, nil
}
