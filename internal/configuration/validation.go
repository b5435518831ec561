package configuration

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	keyPwmChipPath          = "pwm_chip_path"
	keyPwmPath              = "pwm_path"
	keyTempSensorPaths      = "temp_sensor_paths"
	keyLegacyTempSensorPath = "temp_sensor_path"
	keyInterval             = "interval"
	keyVerbose              = "verbose"
	keyLogLevel             = "log_level"
	keyCurve                = "temperature_to_duty"
	keyStatistics           = "statistics"

	maxInterval = math.MaxInt32
	maxPort     = 65535
)

var LogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// validator merges the values of a loaded file into a configuration that
// already holds the defaults. A field is only overwritten once its value
// passed validation.
type validator struct {
	v        *viper.Viper
	defaults Configuration
	report   *Report
}

func (val *validator) validate(config *Configuration) {
	val.validatePath(keyPwmChipPath, &config.PwmChipPath, val.defaults.PwmChipPath)
	val.validatePath(keyPwmPath, &config.PwmPath, val.defaults.PwmPath)
	val.validateTempSensorPaths(config)
	val.validateInterval(config)
	val.validateVerbose(config)
	val.validateLogLevel(config)
	val.validateCurve(config)
	val.validateStatistics(config)
}

func (val *validator) fallback(field string, value interface{}, fallback interface{}, message string) {
	ui.Error("Config Error: '%s' %s, got %v. Falling back to default: %v", field, message, value, fallback)
	val.report.Issues = append(val.report.Issues, Issue{
		Field:    field,
		Value:    value,
		Fallback: fallback,
		Message:  message,
	})
}

func (val *validator) skip(field string, value interface{}, message string) {
	ui.Error("Config Error: '%s' %s, got %v. Skipping this entry.", field, message, value)
	val.report.Issues = append(val.report.Issues, Issue{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

func (val *validator) validatePath(key string, target *string, fallback string) {
	if !val.v.IsSet(key) {
		return
	}
	raw := val.v.Get(key)
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		val.fallback(key, raw, fallback, "must be a non-empty string")
		return
	}
	*target = value
}

func (val *validator) validateTempSensorPaths(config *Configuration) {
	if !val.v.IsSet(keyTempSensorPaths) {
		val.validateLegacyTempSensorPath(config)
		return
	}

	raw := val.v.Get(keyTempSensorPaths)
	items, ok := raw.([]interface{})
	if !ok || len(items) <= 0 {
		val.fallback(keyTempSensorPaths, raw, val.defaults.TempSensorPaths, "must be a non-empty list of strings")
		return
	}

	var paths []string
	for i, item := range items {
		path, ok := item.(string)
		if !ok || strings.TrimSpace(path) == "" {
			val.skip(fmt.Sprintf("%s[%d]", keyTempSensorPaths, i), item, "is not a valid path")
			continue
		}
		if !util.PathExists(path) {
			ui.Warning("Configured path in '%s' does not exist: %s", keyTempSensorPaths, path)
		}
		paths = append(paths, path)
	}

	if len(paths) <= 0 {
		val.fallback(keyTempSensorPaths, raw, val.defaults.TempSensorPaths, "contains no valid paths")
		return
	}
	config.TempSensorPaths = paths
}

func (val *validator) validateLegacyTempSensorPath(config *Configuration) {
	if !val.v.IsSet(keyLegacyTempSensorPath) {
		return
	}
	raw := val.v.Get(keyLegacyTempSensorPath)
	path, ok := raw.(string)
	if !ok || strings.TrimSpace(path) == "" {
		val.fallback(keyLegacyTempSensorPath, raw, val.defaults.TempSensorPaths, "must be a non-empty string")
		return
	}
	ui.Info("Using legacy key '%s', consider switching to '%s'", keyLegacyTempSensorPath, keyTempSensorPaths)
	if !util.PathExists(path) {
		ui.Warning("Configured path in '%s' does not exist: %s", keyLegacyTempSensorPath, path)
	}
	config.TempSensorPaths = []string{path}
}

func (val *validator) validateInterval(config *Configuration) {
	if !val.v.IsSet(keyInterval) {
		return
	}
	raw := val.v.Get(keyInterval)
	value, ok := toNumber(raw)
	if !ok || !util.IsIntegral(value) || value <= 0 || value > maxInterval {
		val.fallback(keyInterval, raw, val.defaults.Interval, "must be a positive integer")
		return
	}
	config.Interval = int(value)
}

func (val *validator) validateVerbose(config *Configuration) {
	if !val.v.IsSet(keyVerbose) {
		return
	}
	raw := val.v.Get(keyVerbose)
	value, ok := raw.(bool)
	if !ok {
		val.fallback(keyVerbose, raw, val.defaults.Verbose, "must be a boolean")
		return
	}
	config.Verbose = value
}

func (val *validator) validateLogLevel(config *Configuration) {
	if !val.v.IsSet(keyLogLevel) {
		return
	}
	raw := val.v.Get(keyLogLevel)
	value, ok := raw.(string)
	level := strings.ToUpper(strings.TrimSpace(value))
	if !ok || !slices.Contains(LogLevels, level) {
		val.fallback(keyLogLevel, raw, val.defaults.LogLevel,
			fmt.Sprintf("must be one of %s", strings.Join(LogLevels, ", ")))
		return
	}
	config.LogLevel = level
}

// validateCurve accepts the curve as a whole or not at all
func (val *validator) validateCurve(config *Configuration) {
	if !val.v.IsSet(keyCurve) {
		return
	}
	raw := val.v.Get(keyCurve)
	items, ok := raw.([]interface{})
	if !ok || len(items) <= 0 {
		val.fallback(keyCurve, raw, val.defaults.Curve, "must be a non-empty list")
		return
	}

	rules := make([]CurveRule, 0, len(items))
	for i, item := range items {
		rule, err := decodeCurveRule(item)
		if err != nil {
			val.fallback(fmt.Sprintf("%s[%d]", keyCurve, i), item, val.defaults.Curve,
				fmt.Sprintf("is an invalid rule (%v)", err))
			return
		}
		rules = append(rules, rule)
	}

	SortCurve(rules)
	config.Curve = rules
}

// SortCurve sorts the rules ascending by temperature, keeping the order of equal thresholds
func SortCurve(rules []CurveRule) {
	slices.SortStableFunc(rules, func(a, b CurveRule) int {
		return cmp.Compare(a.Temp, b.Temp)
	})
}

func decodeCurveRule(item interface{}) (CurveRule, error) {
	if item == nil {
		return CurveRule{}, errors.New("rule is empty")
	}
	fields, ok := item.(map[string]interface{})
	if !ok {
		return CurveRule{}, errors.New("rule is not an object")
	}
	for _, key := range []string{"temp", "duty"} {
		value, found := fields[key]
		if !found || value == nil {
			return CurveRule{}, fmt.Errorf("missing %s", key)
		}
		if _, ok := toNumber(value); !ok {
			return CurveRule{}, fmt.Errorf("%s %v is not a number", key, value)
		}
	}

	var raw struct {
		Temp float64 `mapstructure:"temp"`
		Duty float64 `mapstructure:"duty"`
	}
	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &metadata,
		Result:   &raw,
	})
	if err != nil {
		return CurveRule{}, err
	}
	if err := decoder.Decode(item); err != nil {
		return CurveRule{}, err
	}
	if len(metadata.Unset) > 0 {
		return CurveRule{}, fmt.Errorf("missing %s", strings.Join(metadata.Unset, ", "))
	}
	if !util.IsFinite(raw.Temp) {
		return CurveRule{}, fmt.Errorf("temp %v is not a number", raw.Temp)
	}
	if !util.IsFinite(raw.Duty) || raw.Duty < 0 || raw.Duty > 100 {
		return CurveRule{}, fmt.Errorf("duty %v must be within [0, 100]", raw.Duty)
	}

	return CurveRule{
		Temp: raw.Temp,
		Duty: int(math.Round(raw.Duty)),
	}, nil
}

func (val *validator) validateStatistics(config *Configuration) {
	if !val.v.IsSet(keyStatistics) {
		return
	}
	raw := val.v.Get(keyStatistics)
	values, ok := raw.(map[string]interface{})
	if !ok {
		val.fallback(keyStatistics, raw, val.defaults.Statistics, "must be an object")
		return
	}

	if enabledRaw, found := values["enabled"]; found {
		enabled, ok := enabledRaw.(bool)
		if ok {
			config.Statistics.Enabled = enabled
		} else {
			val.fallback(keyStatistics+".enabled", enabledRaw, val.defaults.Statistics.Enabled, "must be a boolean")
		}
	}

	if portRaw, found := values["port"]; found {
		port, ok := toNumber(portRaw)
		if ok && util.IsIntegral(port) && port >= 1 && port <= maxPort {
			config.Statistics.Port = int(port)
		} else {
			val.fallback(keyStatistics+".port", portRaw, val.defaults.Statistics.Port,
				fmt.Sprintf("must be an integer within [1, %d]", maxPort))
		}
	}
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// checkPwmPath only warns, the channel might be exported after startup
func checkPwmPath(path string) {
	chip := filepath.Dir(path)
	if !util.IsDir(chip) {
		ui.Warning("Parent PWM chip directory for '%s' does not exist: %s. PWM might not be available.", keyPwmPath, chip)
	} else if !util.PathExists(path) {
		ui.Warning("Configured path for '%s' does not exist: %s. It might need to be exported.", keyPwmPath, path)
	}
}
