package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "pwmfan"
)

// NewRegistry returns a registry with the process and go collectors already registered
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return registry
}

func Register(registry *prometheus.Registry, collector ...prometheus.Collector) {
	registry.MustRegister(collector...)
}
