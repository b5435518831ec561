package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
)

const (
	EndpointPathAlive   = "/alive/"
	EndpointPathMetrics = "/metrics/"
	EndpointPathStatus  = "/status/"
)

// CreateRestService creates the read-only statistics service.
// Nothing exposed here can change the state of the fan.
func CreateRestService(contr controller.FanController, readings *sensors.Readings, registry *prometheus.Registry) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.GET(EndpointPathAlive, isAlive)
	echoRest.GET(EndpointPathMetrics, echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	registerStatusEndpoint(echoRest, contr, readings)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
