package fans

import (
	"path/filepath"
	"sort"

	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	DefaultPwmClassPath = "/sys/class/pwm"
	unknownValue        = "-"
)

// Channel describes an exported PWM channel as found in sysfs
type Channel struct {
	Chip      string
	Path      string
	Enable    string
	Period    string
	DutyCycle string
	// Npwm is the number of channels provided by the chip
	Npwm string
}

// FindChannels lists all exported channels below classPath, i.e. /sys/class/pwm/pwmchip0/pwm0.
// Chips without any exported channel are returned with an empty Path.
func FindChannels(classPath string) []Channel {
	chips, _ := filepath.Glob(filepath.Join(classPath, "pwmchip*"))
	sort.Strings(chips)

	var result []Channel
	for _, chip := range chips {
		npwm := util.ReadValueOr(filepath.Join(chip, "npwm"), unknownValue)
		channels, _ := filepath.Glob(filepath.Join(chip, "pwm[0-9]*"))
		sort.Strings(channels)

		found := false
		for _, channel := range channels {
			if !util.IsDir(channel) {
				continue
			}
			found = true
			result = append(result, Channel{
				Chip:      chip,
				Path:      channel,
				Enable:    util.ReadValueOr(filepath.Join(channel, "enable"), unknownValue),
				Period:    util.ReadValueOr(filepath.Join(channel, "period"), unknownValue),
				DutyCycle: util.ReadValueOr(filepath.Join(channel, "duty_cycle"), unknownValue),
				Npwm:      npwm,
			})
		}
		if !found {
			result = append(result, Channel{Chip: chip, Npwm: npwm})
		}
	}
	return result
}
