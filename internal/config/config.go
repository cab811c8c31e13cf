// Package config provides configuration loading for the tempo CLI.
package config

import "github.com/smykla-skalski/tempo/pkg/timing"

// Config is the root configuration for the tempo CLI.
type Config struct {
	// Report configures how accumulated statistics are rendered.
	Report ReportConfig `koanf:"report" toml:"report"`

	// Workload configures the demo workload.
	Workload WorkloadConfig `koanf:"workload" toml:"workload"`
}

// ReportConfig configures the statistics report.
type ReportConfig struct {
	// Format is the report rendering: "table" or "csv".
	Format string `koanf:"format" toml:"format"`

	// Precision is the number of decimal places for the frac and rate
	// columns.
	Precision int `koanf:"precision" toml:"precision"`
}

// Options converts the report configuration into reporter options.
func (c ReportConfig) Options() timing.ReportOptions {
	return timing.ReportOptions{
		Format:    timing.Format(c.Format),
		Precision: c.Precision,
	}
}

// WorkloadConfig configures the demo workload.
type WorkloadConfig struct {
	// Iterations is the number of loop iterations the workload runs.
	Iterations int `koanf:"iterations" toml:"iterations"`

	// Workers is the number of goroutines in the concurrent stage.
	Workers int `koanf:"workers" toml:"workers"`
}
