package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/oklog/run"
	"go.uber.org/atomic"

	"github.com/pwmfan/pwmfan-controller/internal/api"
	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/fans"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
	"github.com/pwmfan/pwmfan-controller/internal/statistics"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

const (
	ModeAuto   = "auto"
	ModeManual = "manual"

	statisticsShutdownTimeout = 5 * time.Second
)

// ErrInterrupted is returned when a signal arrived before the controller was running
var ErrInterrupted = errors.New("interrupted during startup")

type Options struct {
	ConfigPath string
	Mode       string
	// Verbose raises the log level to at least INFO
	Verbose bool

	// Input and Output are used by manual mode
	Input  io.Reader
	Output io.Writer

	// Signals overrides the process signal subscription
	Signals chan os.Signal
	// FanFactory overrides how the PWM channel is accessed
	FanFactory controller.FanFactory
}

type signalError struct {
	signal os.Signal
	// running is whether the controller was running when the signal arrived
	running bool
}

func (e signalError) Error() string {
	return fmt.Sprintf("received signal %s", e.signal)
}

// RunDaemon runs the selected mode until it ends, fails or the process is signalled
func RunDaemon(opts Options) error {
	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}
	if opts.Mode != ModeAuto && opts.Mode != ModeManual {
		return fmt.Errorf("unknown mode %q, use one of: %s | %s", opts.Mode, ModeAuto, ModeManual)
	}
	if opts.FanFactory == nil {
		opts.FanFactory = fans.NewPwmFan
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if os.Geteuid() != 0 {
		ui.Warning("Not running as root, writing to sysfs might fail")
	}

	resolver := configuration.NewResolver(opts.ConfigPath)
	config, report := resolver.Resolve()
	ApplyLogLevel(config.LogLevel, opts.Verbose)
	configuration.WarnAboutFirmwareControl(report.Model, resolver.ThermalPath, config)

	running := atomic.NewBool(false)
	readings := sensors.NewReadings()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	if opts.Mode == ModeManual {
		manual := controller.NewManualController(opts.FanFactory(config.PwmPath), opts.Input, opts.Output)
		g.Add(func() error {
			if err := manual.Initialize(); err != nil {
				return err
			}
			running.Store(true)
			return manual.Run(ctx)
		}, func(err error) {
			cancel()
		})
	} else {
		auto := controller.NewAutoController(resolver, config, opts.FanFactory, readings)
		g.Add(func() error {
			if err := auto.Initialize(); err != nil {
				return err
			}
			running.Store(true)
			return auto.Run(ctx)
		}, func(err error) {
			cancel()
		})

		if config.Statistics.Enabled {
			addStatisticsServer(ctx, &g, auto, readings, config.Statistics.Port)
		}
	}
	{
		sig := opts.Signals
		if sig == nil {
			sig = make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		}

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
				return signalError{signal: s, running: running.Load()}
			case <-ctx.Done():
				return nil
			}
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()
	var sigErr signalError
	switch {
	case errors.As(err, &sigErr):
		if sigErr.running {
			return nil
		}
		return ErrInterrupted
	case err != nil:
		return err
	default:
		ui.Info("Done.")
		return nil
	}
}

func addStatisticsServer(ctx context.Context, g *run.Group, contr controller.FanController, readings *sensors.Readings, port int) {
	registry := statistics.NewRegistry()
	statistics.Register(registry,
		statistics.NewControllerCollector(contr),
		statistics.NewSensorCollector(readings),
	)
	rest := api.CreateRestService(contr, readings, registry)

	g.Add(func() error {
		addr := ":" + strconv.Itoa(port)
		ui.Info("Starting statistics endpoint on %s", addr)
		if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// statistics are optional, keep the controller running
			ui.Error("Cannot start statistics endpoint (%v)", err)
			<-ctx.Done()
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), statisticsShutdownTimeout)
		defer timeoutCancel()
		if err := rest.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping statistics server: %v", err)
		} else {
			ui.Info("Statistics server stopped.")
		}
	})
}

// ApplyLogLevel sets the log threshold from the configured level, verbose forces at least INFO
func ApplyLogLevel(name string, verbose bool) {
	level, err := ui.ParseLevel(name)
	if err != nil {
		ui.Warning("Invalid log level %q, using %s", name, level)
	}
	if verbose && level > ui.LevelInfo {
		level = ui.LevelInfo
	}
	ui.SetLevel(level)
}
