package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pwmfan/pwmfan-controller/internal/controller"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controller controller.FanController

	state               *prometheus.Desc
	period              *prometheus.Desc
	duty                *prometheus.Desc
	temperature         *prometheus.Desc
	temperatureMin      *prometheus.Desc
	temperatureAvg      *prometheus.Desc
	temperatureMax      *prometheus.Desc
	consecutiveFailures *prometheus.Desc
	reloads             *prometheus.Desc
	panics              *prometheus.Desc
	iterations          *prometheus.Desc
}

func newControllerDesc(name string, help string, labels ...string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name), help, labels, nil)
}

func NewControllerCollector(contr controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controller:          contr,
		state:               newControllerDesc("state", "Current state of the control loop, 1 for the active state", "pwm", "state"),
		period:              newControllerDesc("period_nanoseconds", "PWM period of the channel, -1 if invalid", "pwm"),
		duty:                newControllerDesc("duty_percent", "Last duty cycle applied to the channel, -1 if none", "pwm"),
		temperature:         newControllerDesc("temperature_celsius", "Last control temperature"),
		temperatureMin:      newControllerDesc("temperature_window_min_celsius", "Lowest control temperature of the recent window"),
		temperatureAvg:      newControllerDesc("temperature_window_avg_celsius", "Average control temperature of the recent window"),
		temperatureMax:      newControllerDesc("temperature_window_max_celsius", "Highest control temperature of the recent window"),
		consecutiveFailures: newControllerDesc("consecutive_temperature_failures", "Number of failed temperature reads in a row"),
		reloads:             newControllerDesc("config_reloads_total", "Number of configuration reloads"),
		panics:              newControllerDesc("unexpected_errors_total", "Number of recovered unexpected errors in the control loop"),
		iterations:          newControllerDesc("iterations_total", "Number of completed control loop iterations"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.state
	ch <- collector.period
	ch <- collector.duty
	ch <- collector.temperature
	ch <- collector.temperatureMin
	ch <- collector.temperatureAvg
	ch <- collector.temperatureMax
	ch <- collector.consecutiveFailures
	ch <- collector.reloads
	ch <- collector.panics
	ch <- collector.iterations
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.controller.GetStatistics()
	pwm := stats.PwmPath

	for _, state := range []controller.State{
		controller.StateUninitialized,
		controller.StateReady,
		controller.StateDegraded,
		controller.StateTerminated,
	} {
		value := 0.0
		if state == stats.State {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.state, prometheus.GaugeValue, value, pwm, state.String())
	}

	ch <- prometheus.MustNewConstMetric(collector.period, prometheus.GaugeValue, float64(stats.Period), pwm)
	ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(stats.Duty), pwm)
	if stats.TemperatureValid {
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, stats.Temperature)
		ch <- prometheus.MustNewConstMetric(collector.temperatureMin, prometheus.GaugeValue, stats.TemperatureMin)
		ch <- prometheus.MustNewConstMetric(collector.temperatureAvg, prometheus.GaugeValue, stats.TemperatureAvg)
		ch <- prometheus.MustNewConstMetric(collector.temperatureMax, prometheus.GaugeValue, stats.TemperatureMax)
	}
	ch <- prometheus.MustNewConstMetric(collector.consecutiveFailures, prometheus.GaugeValue, float64(stats.ConsecutiveFailures))
	ch <- prometheus.MustNewConstMetric(collector.reloads, prometheus.CounterValue, float64(stats.Reloads))
	ch <- prometheus.MustNewConstMetric(collector.panics, prometheus.CounterValue, float64(stats.Panics))
	ch <- prometheus.MustNewConstMetric(collector.iterations, prometheus.CounterValue, float64(stats.Iterations))
}
