package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
	"github.com/pwmfan/pwmfan-controller/internal/statistics"
)

type MockController struct {
	Stats controller.Statistics
}

func (c MockController) Run(ctx context.Context) error {
	return nil
}

func (c MockController) GetStatistics() controller.Statistics {
	return c.Stats
}

func createTestService() http.Handler {
	contr := MockController{Stats: controller.Statistics{
		State:            controller.StateReady,
		PwmPath:          "/pwm0",
		Period:           40000,
		Interval:         10 * time.Second,
		Duty:             80,
		Temperature:      61.5,
		TemperatureValid: true,
		TemperatureMin:   58,
		TemperatureAvg:   60,
		TemperatureMax:   61.5,
	}}
	readings := sensors.NewReadings()
	readings.Set("/zone0", 61.5)
	registry := statistics.NewRegistry()
	statistics.Register(registry, statistics.NewControllerCollector(contr), statistics.NewSensorCollector(readings))
	return CreateRestService(contr, readings, registry)
}

func request(t *testing.T, handler http.Handler, method string, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// WHEN
	rec := request(t, createTestService(), http.MethodGet, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus(t *testing.T) {
	// WHEN
	rec := request(t, createTestService(), http.MethodGet, "/status/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "READY", status.State)
	assert.Equal(t, 80, status.Duty)
	assert.Equal(t, 10.0, status.IntervalSeconds)
	require.NotNil(t, status.Temperature)
	assert.Equal(t, 61.5, *status.Temperature)
	require.NotNil(t, status.TemperatureWindow)
	assert.Equal(t, 58.0, status.TemperatureWindow.Min)
	assert.Equal(t, map[string]float64{"/zone0": 61.5}, status.Sensors)
}

func TestStatus_WithoutTemperature(t *testing.T) {
	// GIVEN
	status := newStatus(controller.Statistics{State: controller.StateDegraded, Duty: -1}, nil)

	// THEN
	assert.Nil(t, status.Temperature)
	assert.Nil(t, status.TemperatureWindow)
	assert.Nil(t, status.LastIteration)
	assert.Empty(t, status.Sensors)
}

func TestMetrics(t *testing.T) {
	// WHEN
	rec := request(t, createTestService(), http.MethodGet, "/metrics")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pwmfan_controller_duty_percent{pwm="/pwm0"} 80`)
	assert.Contains(t, rec.Body.String(), `pwmfan_sensor_temperature_celsius{id="/zone0"} 61.5`)
}

func TestReadOnly(t *testing.T) {
	for _, path := range []string{"/alive/", "/status/", "/metrics/"} {
		// WHEN
		rec := request(t, createTestService(), http.MethodPost, path)

		// THEN
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}
