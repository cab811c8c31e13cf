package config

import "github.com/smykla-skalski/tempo/pkg/timing"

// Default configuration values, mirrored into the koanf defaults map.
const (
	// DefaultIterations is the default loop count for the demo workload.
	DefaultIterations = 1000

	// DefaultWorkers is the default goroutine count for the concurrent
	// workload stage.
	DefaultWorkers = 4
)

// DefaultConfig returns a Config with every default populated.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Format:    string(timing.FormatTable),
			Precision: timing.DefaultPrecision,
		},
		Workload: WorkloadConfig{
			Iterations: DefaultIterations,
			Workers:    DefaultWorkers,
		},
	}
}

// defaultsToMap flattens the defaults for the koanf confmap provider.
func defaultsToMap() map[string]any {
	return map[string]any{
		"report.format":       string(timing.FormatTable),
		"report.precision":    timing.DefaultPrecision,
		"workload.iterations": DefaultIterations,
		"workload.workers":    DefaultWorkers,
	}
}
