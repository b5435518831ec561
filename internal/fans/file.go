package fans

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

// PwmFan is a PWM channel exported through sysfs, i.e. /sys/class/pwm/pwmchip0/pwm0
type PwmFan struct {
	Path string
}

func NewPwmFan(path string) Fan {
	return &PwmFan{Path: path}
}

func (fan PwmFan) GetId() string {
	return fan.Path
}

func (fan PwmFan) IsEnabled() bool {
	value, err := util.ReadValue(filepath.Join(fan.Path, "enable"))
	if err != nil {
		ui.Debug("Unable to read enable state of %s: %v", fan.Path, err)
		return false
	}
	return value == EnabledMarker
}

func (fan PwmFan) ReadPeriod() (int64, error) {
	value, err := util.ReadValue(filepath.Join(fan.Path, "period"))
	if err != nil {
		return -1, err
	}
	period, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return -1, fmt.Errorf("%w: %q is not an integer", ErrInvalidPeriod, value)
	}
	if period <= 0 {
		return -1, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	return period, nil
}

func (fan *PwmFan) SetDutyCycle(percent float64, period int64) bool {
	if math.IsNaN(percent) {
		ui.Error("Refusing to apply duty cycle NaN to %s", fan.Path)
		return false
	}
	if percent < MinDutyPercent || percent > MaxDutyPercent {
		ui.Warning("Duty cycle %.1f%% out of range, clamping to [%d, %d]", percent, MinDutyPercent, MaxDutyPercent)
		percent = util.Coerce(percent, MinDutyPercent, MaxDutyPercent)
	}

	if period <= 0 {
		ui.Error("Invalid period %d for %s, not setting duty cycle", period, fan.Path)
		return false
	}

	if !fan.IsEnabled() {
		ui.Warning("PWM channel %s is not enabled, not setting duty cycle", fan.Path)
		return false
	}

	dutyNs := int64(math.Round(float64(period) * percent / 100))
	err := util.WriteIntToFile(dutyNs, filepath.Join(fan.Path, "duty_cycle"))
	if err != nil {
		ui.Error("Unable to set duty cycle of %s: %v", fan.Path, err)
		return false
	}
	ui.Debug("Set duty cycle of %s to %.0f%% (%d/%d ns)", fan.Path, percent, dutyNs, period)
	return true
}
