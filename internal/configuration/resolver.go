package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/qdm12/reprint"
	"github.com/spf13/viper"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

type LoadOutcome int

const (
	OutcomeLoaded LoadOutcome = iota
	OutcomeMissing
	OutcomePermissionDenied
	OutcomeMalformed
	OutcomeFailed
)

func (o LoadOutcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeMissing:
		return "missing"
	case OutcomePermissionDenied:
		return "permission denied"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "failed"
	}
}

// Issue describes a single field that was replaced by its default
type Issue struct {
	Field    string
	Value    interface{}
	Fallback interface{}
	Message  string
}

func (i Issue) String() string {
	if i.Fallback == nil {
		return fmt.Sprintf("%s: %s (got %v)", i.Field, i.Message, i.Value)
	}
	return fmt.Sprintf("%s: %s (got %v, using %v)", i.Field, i.Message, i.Value, i.Fallback)
}

// Report is the outcome of a single Resolve call
type Report struct {
	Path    string
	Model   string
	Outcome LoadOutcome
	LoadErr error
	Issues  []Issue
}

func (r Report) Loaded() bool {
	return r.Outcome == OutcomeLoaded
}

// Valid is true if the file was loaded and every field was accepted as is
func (r Report) Valid() bool {
	return r.Loaded() && len(r.Issues) == 0
}

// Resolver produces the effective configuration from the hardware
// defaults and the configuration file at ConfigPath.
type Resolver struct {
	ConfigPath  string
	ModelPath   string
	ThermalPath string
}

func NewResolver(configPath string) *Resolver {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &Resolver{
		ConfigPath:  configPath,
		ModelPath:   DefaultModelPath,
		ThermalPath: DefaultThermalPath,
	}
}

// Load resolves the configuration, it never fails
func (r *Resolver) Load() Configuration {
	config, _ := r.Resolve()
	return config
}

// Defaults returns the defaults adjusted for the detected board
func (r *Resolver) Defaults() Configuration {
	return hardwareDefaults(r.Model(), r.ThermalPath)
}

func (r *Resolver) Model() string {
	return DetectModel(r.ModelPath)
}

// ModTime returns the modification time of the configuration file,
// or the zero time if it does not exist or cannot be inspected.
func (r *Resolver) ModTime() time.Time {
	modTime, err := util.ModTime(r.ConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ui.Warning("Unable to get modification time of %s: %v", r.ConfigPath, err)
		}
		return time.Time{}
	}
	return modTime
}

func (r *Resolver) Resolve() (Configuration, Report) {
	report := Report{
		Path:  r.ConfigPath,
		Model: r.Model(),
	}
	defaults := hardwareDefaults(report.Model, r.ThermalPath)
	config := reprint.This(defaults).(Configuration)

	ui.Debug("Attempting to load configuration from: %s", r.ConfigPath)
	v, err := r.read()
	report.LoadErr = err
	report.Outcome = classifyLoadError(err)

	switch report.Outcome {
	case OutcomeLoaded:
		ui.Info("Successfully loaded configuration file: %s", r.ConfigPath)
		val := &validator{v: v, defaults: defaults, report: &report}
		val.validate(&config)
	case OutcomeMissing:
		ui.Warning("Configuration file %s not found, using default configuration", r.ConfigPath)
	case OutcomePermissionDenied:
		ui.Error("Permission denied reading configuration file %s, using defaults", r.ConfigPath)
	case OutcomeMalformed:
		ui.Error("Error decoding configuration file %s: %v, using defaults", r.ConfigPath, err)
	default:
		ui.Error("Unexpected error loading configuration file %s: %v, using defaults", r.ConfigPath, err)
	}

	checkPwmPath(config.PwmPath)

	switch {
	case report.Loaded() && len(report.Issues) > 0:
		ui.Warning("Configuration from %s contained errors, used defaults for invalid entries", r.ConfigPath)
	case !report.Loaded():
		ui.Info("Using default configuration")
	default:
		ui.Info("Configuration loaded and validated successfully")
	}

	return config, report
}

func (r *Resolver) read() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(r.ConfigPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

func classifyLoadError(err error) LoadOutcome {
	var parseErr viper.ConfigParseError
	switch {
	case err == nil:
		return OutcomeLoaded
	case errors.Is(err, fs.ErrNotExist):
		return OutcomeMissing
	case errors.Is(err, fs.ErrPermission):
		return OutcomePermissionDenied
	case errors.As(err, &parseErr):
		return OutcomeMalformed
	default:
		return OutcomeFailed
	}
}
