package curves

import (
	"math"

	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	MinDuty = 0
	MaxDuty = 100
)

// TempToDuty returns the duty of the first rule whose threshold is above temp,
// or the duty of the last rule if temp reached every threshold.
// The curve is expected to be sorted ascending by temperature.
func TempToDuty(temp *float64, curve []configuration.CurveRule) (duty int, ok bool) {
	if temp == nil {
		ui.Warning("Cannot compute duty cycle without a temperature")
		return 0, false
	}
	if len(curve) <= 0 {
		ui.Error("Cannot compute duty cycle from an empty curve")
		return 0, false
	}

	found := false
	for i, rule := range curve {
		if !util.IsFinite(rule.Temp) {
			ui.Error("Skipping invalid curve rule at index %d: %v", i, rule)
			continue
		}
		duty = rule.Duty
		found = true
		if rule.Temp > *temp {
			break
		}
	}
	if !found {
		ui.Error("Curve contains no valid rule")
		return 0, false
	}

	return util.CoerceInt(duty, MinDuty, MaxDuty), true
}

// Sample evaluates the curve at every step in [from..to], used to plot it
func Sample(curve []configuration.CurveRule, from float64, to float64, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	count := int(math.Floor((to-from)/step)) + 1
	result := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		temp := from + float64(i)*step
		duty, ok := TempToDuty(&temp, curve)
		if !ok {
			return nil
		}
		result = append(result, float64(duty))
	}
	return result
}
