package configuration

// StatisticsConfig controls the read-only statistics endpoint
type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}
