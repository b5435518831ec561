package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
)

type TemperatureWindow struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

type Status struct {
	State               string             `json:"state"`
	PwmPath             string             `json:"pwmPath"`
	Period              int64              `json:"period"`
	IntervalSeconds     float64            `json:"intervalSeconds"`
	Duty                int                `json:"duty"`
	Temperature         *float64           `json:"temperature"`
	TemperatureWindow   *TemperatureWindow `json:"temperatureWindow,omitempty"`
	ConsecutiveFailures int                `json:"consecutiveFailures"`
	Reloads             int                `json:"reloads"`
	UnexpectedErrors    int                `json:"unexpectedErrors"`
	Iterations          int                `json:"iterations"`
	LastIteration       *time.Time         `json:"lastIteration,omitempty"`
	Sensors             map[string]float64 `json:"sensors"`
}

func registerStatusEndpoint(rest *echo.Echo, contr controller.FanController, readings *sensors.Readings) {
	rest.GET(EndpointPathStatus, func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, newStatus(contr.GetStatistics(), readings), indentationChar)
	})
}

func newStatus(stats controller.Statistics, readings *sensors.Readings) Status {
	status := Status{
		State:               stats.State.String(),
		PwmPath:             stats.PwmPath,
		Period:              stats.Period,
		IntervalSeconds:     stats.Interval.Seconds(),
		Duty:                stats.Duty,
		ConsecutiveFailures: stats.ConsecutiveFailures,
		Reloads:             stats.Reloads,
		UnexpectedErrors:    stats.Panics,
		Iterations:          stats.Iterations,
		Sensors:             map[string]float64{},
	}
	if stats.TemperatureValid {
		temperature := stats.Temperature
		status.Temperature = &temperature
		status.TemperatureWindow = &TemperatureWindow{
			Min: stats.TemperatureMin,
			Avg: stats.TemperatureAvg,
			Max: stats.TemperatureMax,
		}
	}
	if !stats.LastIteration.IsZero() {
		lastIteration := stats.LastIteration
		status.LastIteration = &lastIteration
	}
	if readings != nil {
		status.Sensors = readings.Items()
	}
	return status
}
