package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pwmfan/pwmfan-controller/internal/sensors"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	readings *sensors.Readings
	value    *prometheus.Desc
}

func NewSensorCollector(readings *sensors.Readings) *SensorCollector {
	return &SensorCollector{
		readings: readings,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature_celsius"),
			"Last successful reading of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for sensorId, value := range collector.readings.Items() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sensorId)
	}
}
