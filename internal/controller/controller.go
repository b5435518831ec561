package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/curves"
	"github.com/pwmfan/pwmfan-controller/internal/fans"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	// MaxConsecutiveFailures is the number of failed temperature reads in a row
	// after which the control loop gives up
	MaxConsecutiveFailures = 5

	// PanicBackoffFactor multiplies the interval after an unexpected fault
	PanicBackoffFactor = 2

	temperatureWindowSize = 30
)

var (
	ErrInitialization            = errors.New("pwm initialization failed")
	ErrTemperatureFailureCeiling = errors.New("too many consecutive temperature read failures")
)

// InitializationError is returned when the PWM channel cannot be brought up at startup
type InitializationError struct {
	Cause humane.Error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInitialization.Error(), e.Cause.Error())
}

func (e *InitializationError) Unwrap() error {
	return ErrInitialization
}

func (e *InitializationError) Advice() []string {
	return e.Cause.Advice()
}

type State int

const (
	StateUninitialized State = iota
	StateReady
	// StateDegraded means the channel is unusable until a re-initialization succeeds
	StateDegraded
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateReady:
		return "READY"
	case StateDegraded:
		return "DEGRADED"
	case StateTerminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loader provides configuration generations to the control loop
type Loader interface {
	Load() configuration.Configuration
	ModTime() time.Time
}

// FanFactory creates the fan for a pwm_path
type FanFactory func(path string) fans.Fan

// Statistics is a snapshot of the control loop, safe to hand out to other goroutines
type Statistics struct {
	State               State
	PwmPath             string
	Period              int64
	Interval            time.Duration
	Temperature         float64
	TemperatureValid    bool
	TemperatureMin      float64
	TemperatureAvg      float64
	TemperatureMax      float64
	Duty                int
	ConsecutiveFailures int
	Reloads             int
	Panics              int
	Iterations          int
	LastIteration       time.Time
}

type FanController interface {
	Run(ctx context.Context) error
	GetStatistics() Statistics
}

// AutoController drives a single PWM channel from a temperature curve.
// Only Run and GetStatistics may be called concurrently.
type AutoController struct {
	loader   Loader
	newFan   FanFactory
	readings *sensors.Readings

	config  configuration.Configuration
	fan     fans.Fan
	sensors []sensors.Sensor
	period  int64

	lastAppliedDuty     int
	lastConfigModTime   time.Time
	consecutiveFailures int

	mu     sync.RWMutex
	stats  Statistics
	window *util.RollingWindow
}

func NewAutoController(loader Loader, config configuration.Configuration, newFan FanFactory, readings *sensors.Readings) *AutoController {
	if newFan == nil {
		newFan = fans.NewPwmFan
	}
	if readings == nil {
		readings = sensors.NewReadings()
	}
	c := &AutoController{
		loader:          loader,
		newFan:          newFan,
		readings:        readings,
		period:          -1,
		lastAppliedDuty: -1,
		window:          util.CreateRollingWindow(temperatureWindowSize),
	}
	c.stats.Duty = -1
	c.stats.Period = -1
	c.applyConfig(config)
	return c
}

// Initialize records the current configuration file state and brings up the channel.
// A failure is fatal for the controller.
func (c *AutoController) Initialize() error {
	c.lastConfigModTime = c.loader.ModTime()
	logConfiguration(c.config)

	if herr := c.initializeHardware(); herr != nil {
		c.setState(StateTerminated)
		return &InitializationError{Cause: herr}
	}
	return nil
}

// Run executes the control loop until ctx is cancelled or a fatal error occurs
func (c *AutoController) Run(ctx context.Context) error {
	if c.GetStatistics().State == StateUninitialized {
		if err := c.Initialize(); err != nil {
			return err
		}
	}

	ui.Info("Starting control loop for %s", c.fan.GetId())
	for {
		sleep, err := c.iterate()
		if err != nil {
			c.setState(StateTerminated)
			return err
		}

		ui.Debug("Sleeping for %v", sleep)
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			ui.Info("Control loop stopped")
			return nil
		case <-timer.C:
		}
	}
}

// iterate runs a single cycle and returns how long to wait before the next one
func (c *AutoController) iterate() (sleep time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			ui.Error("Unexpected error in control loop: %v", r)
			c.update(func(s *Statistics) {
				s.Panics++
			})
			sleep = PanicBackoffFactor * c.config.IntervalDuration()
			err = nil
		}
	}()

	err = c.cycle()
	c.update(func(s *Statistics) {
		s.Iterations++
		s.LastIteration = time.Now()
	})
	return c.config.IntervalDuration(), err
}

func (c *AutoController) cycle() error {
	if skip := c.checkForConfigChange(); skip {
		return nil
	}

	if c.period <= 0 {
		ui.Warning("PWM period not valid (%d), attempting re-initialization", c.period)
		if herr := c.initializeHardware(); herr != nil {
			ui.Error("Failed to re-initialize PWM, skipping cycle: %v", herr)
			return nil
		}
		ui.Info("PWM re-initialized successfully")
	}

	temp, ok := sensors.ReadTemperature(c.sensors, c.readings)
	if !ok {
		c.consecutiveFailures++
		c.update(func(s *Statistics) {
			s.TemperatureValid = false
			s.ConsecutiveFailures = c.consecutiveFailures
		})
		ui.Warning("Temperature read failed (%d/%d consecutive errors)", c.consecutiveFailures, MaxConsecutiveFailures)
		if c.consecutiveFailures >= MaxConsecutiveFailures {
			ui.Critical("Exceeded maximum consecutive temperature read errors")
			return fmt.Errorf("%w: %d in a row", ErrTemperatureFailureCeiling, c.consecutiveFailures)
		}
		return nil
	}
	c.consecutiveFailures = 0
	c.recordTemperature(temp)

	duty, ok := curves.TempToDuty(&temp, c.config.Curve)
	if !ok {
		ui.Error("Failed to calculate duty cycle, skipping update")
		return nil
	}

	if c.config.Verbose {
		ui.Info("Temperature: %.1f°C => calculated duty cycle: %d%%", temp, duty)
	}

	if duty == c.lastAppliedDuty {
		ui.Debug("Temperature %.1f°C, duty cycle %d%% unchanged", temp, duty)
		return nil
	}

	ui.Info("Temperature %.1f°C triggers change: updating duty cycle from %d%% to %d%%", temp, c.lastAppliedDuty, duty)
	if c.fan.SetDutyCycle(float64(duty), c.period) {
		c.lastAppliedDuty = duty
		c.update(func(s *Statistics) {
			s.Duty = duty
		})
	}
	return nil
}

// checkForConfigChange reloads the configuration if the file changed.
// It returns true if the rest of the cycle has to be skipped.
func (c *AutoController) checkForConfigChange() bool {
	modTime := c.loader.ModTime()
	if modTime.Equal(c.lastConfigModTime) {
		return false
	}

	ui.Info("Configuration file change detected, reloading configuration")
	c.lastConfigModTime = modTime
	c.applyConfig(c.loader.Load())
	c.lastAppliedDuty = -1
	c.update(func(s *Statistics) {
		s.Reloads++
	})

	ui.Info("Re-initializing PWM due to configuration change")
	if herr := c.initializeHardware(); herr != nil {
		ui.Error("Failed to re-initialize PWM after configuration reload, skipping cycle: %v", herr)
		return true
	}
	ui.Info("PWM re-initialized successfully")
	return false
}

func (c *AutoController) applyConfig(config configuration.Configuration) {
	c.config = config
	c.fan = c.newFan(config.PwmPath)
	c.sensors = sensors.NewSensors(config.TempSensorPaths)
	c.readings.Clear()
	c.update(func(s *Statistics) {
		s.PwmPath = config.PwmPath
		s.Interval = config.IntervalDuration()
	})
}

func (c *AutoController) initializeHardware() humane.Error {
	period, herr := fans.Initialize(c.fan)
	if herr != nil {
		c.period = -1
		c.setState(StateDegraded)
		c.update(func(s *Statistics) {
			s.Period = -1
		})
		return herr
	}

	ui.Info("PWM initialized, period: %d ns", period)
	c.period = period
	c.lastAppliedDuty = -1
	c.setState(StateReady)
	c.update(func(s *Statistics) {
		s.Period = period
	})
	return nil
}

func (c *AutoController) recordTemperature(temp float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window.Append(temp)
	c.stats.Temperature = temp
	c.stats.TemperatureValid = true
	c.stats.ConsecutiveFailures = 0
	c.stats.TemperatureMin = c.window.Min()
	c.stats.TemperatureAvg = c.window.Avg()
	c.stats.TemperatureMax = c.window.Max()
}

func (c *AutoController) setState(state State) {
	c.update(func(s *Statistics) {
		if s.State != state {
			ui.Debug("Control loop state: %s -> %s", s.State, state)
		}
		s.State = state
	})
}

func (c *AutoController) update(f func(s *Statistics)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.stats)
}

func (c *AutoController) GetStatistics() Statistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// GetConfiguration returns the configuration of the current generation.
// Not safe to call while Run is active.
func (c *AutoController) GetConfiguration() configuration.Configuration {
	return c.config
}

func logConfiguration(config configuration.Configuration) {
	ui.Info("Starting auto mode with configuration:")
	ui.Info("  pwm_path: %s", config.PwmPath)
	ui.Info("  temp_sensor_paths: %v", config.TempSensorPaths)
	ui.Info("  interval: %d", config.Interval)
	ui.Info("  log_level: %s", config.LogLevel)
	ui.Info("  temperature_to_duty: %v", config.Curve)
}
