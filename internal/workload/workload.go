// Package workload runs a synthetic workload that exercises every timing
// entry point: wrapped functions with derived and explicit tags, nested
// spans, and concurrent recording from a goroutine pool.
package workload

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/tempo/internal/config"
	"github.com/smykla-skalski/tempo/pkg/logger"
	"github.com/smykla-skalski/tempo/pkg/timing"
)

// durationDisplayUnits limits how many units the human duration shows.
const durationDisplayUnits = 2

// Runner drives the demo workload against a registry.
type Runner struct {
	reg *timing.Registry
	log logger.Logger
	cfg config.WorkloadConfig
}

// New creates a Runner recording into reg.
func New(reg *timing.Registry, log logger.Logger, cfg config.WorkloadConfig) *Runner {
	return &Runner{
		reg: reg,
		log: log.With("component", "workload"),
		cfg: cfg,
	}
}

// Run executes the sequential, method, span, and concurrent stages.
// Cancelling ctx stops the workload between iterations; everything timed
// up to that point stays recorded.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	r.log.Debug("starting workload",
		"iterations", r.cfg.Iterations,
		"workers", r.cfg.Workers,
	)

	if err := r.sequential(ctx); err != nil {
		return err
	}

	digest := timing.Wrap(r.reg, "", r.SquareDigest)
	digest()

	checksumSpan := r.reg.Start("checksum")
	checksum(r.cfg.Iterations)
	checksumSpan.Stop()

	if err := r.concurrent(ctx); err != nil {
		return err
	}

	r.log.Info("workload finished",
		"iterations", humanize.Comma(int64(r.cfg.Iterations)),
		"took", durafmt.Parse(time.Since(start)).LimitFirstN(durationDisplayUnits).String(),
	)

	return nil
}

// sequential mirrors the basic loop: a wrapped triangular sum that opens
// a nested span, and a square sum wrapped under an explicit tag.
func (r *Runner) sequential(ctx context.Context) error {
	triangular := timing.Wrap1(r.reg, "", r.Triangular)
	squares := timing.Wrap1(r.reg, "my_func", squareSum)

	for i := range r.cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "sequential stage interrupted")
		}

		if triangular(i) < r.cfg.Iterations {
			squares(i)
		}
	}

	return nil
}

// concurrent records spans from a pool of goroutines, which doubles as a
// live exercise of the registry's locking.
func (r *Runner) concurrent(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	perWorker := r.cfg.Iterations / r.cfg.Workers
	if perWorker < 1 {
		perWorker = 1
	}

	for range r.cfg.Workers {
		g.Go(func() error {
			for range perWorker {
				if err := gctx.Err(); err != nil {
					return errors.Wrap(err, "concurrent stage interrupted")
				}

				_ = r.reg.Time("worker", func() error {
					checksum(r.cfg.Iterations)

					return nil
				})
			}

			return nil
		})
	}

	return g.Wait()
}

// Triangular computes the triangular sum of n inside a nested span, so
// the derived-tag wrapper around it and the "triangular" tag overlap on
// purpose.
func (r *Runner) Triangular(n int) int {
	defer r.reg.Start("triangular").Stop()

	total := 0
	for i := range n {
		total += i
	}

	return total
}

// SquareDigest computes a square sum sized by the configured iterations.
func (r *Runner) SquareDigest() int {
	return squareSum(r.cfg.Iterations)
}

func squareSum(n int) int {
	total := 0
	for i := range n {
		total += i * i
	}

	return total
}

func checksum(n int) int {
	sum := 0
	for i := range n {
		sum ^= i
	}

	return sum
}
