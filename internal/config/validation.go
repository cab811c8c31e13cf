package config

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tempo/pkg/timing"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPrecision is returned when the report precision is out
	// of range.
	ErrInvalidPrecision = errors.New("invalid precision value")

	// ErrInvalidCount is returned when a count value is not positive.
	ErrInvalidCount = errors.New("invalid count value")
)

// maxPrecision caps the frac/rate decimal places at float64's useful
// digit count.
const maxPrecision = 17

// Validate checks the configuration semantics.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	if _, err := timing.ParseFormat(cfg.Report.Format); err != nil {
		return err
	}

	if cfg.Report.Precision < 1 || cfg.Report.Precision > maxPrecision {
		return errors.Wrapf(
			ErrInvalidPrecision,
			"precision must be between 1 and %d, got %d",
			maxPrecision,
			cfg.Report.Precision,
		)
	}

	if cfg.Workload.Iterations < 1 {
		return errors.Wrapf(
			ErrInvalidCount,
			"workload iterations must be positive, got %d",
			cfg.Workload.Iterations,
		)
	}

	if cfg.Workload.Workers < 1 {
		return errors.Wrapf(
			ErrInvalidCount,
			"workload workers must be positive, got %d",
			cfg.Workload.Workers,
		)
	}

	return nil
}
