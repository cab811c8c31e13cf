package workload_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tempo/internal/config"
	"github.com/smykla-skalski/tempo/internal/workload"
	"github.com/smykla-skalski/tempo/pkg/logger"
	"github.com/smykla-skalski/tempo/pkg/timing"
)

var _ = Describe("Runner", func() {
	var (
		reg *timing.Registry
		cfg config.WorkloadConfig
	)

	BeforeEach(func() {
		reg = timing.New()
		cfg = config.WorkloadConfig{Iterations: 50, Workers: 2}
	})

	run := func() timing.Snapshot {
		runner := workload.New(reg, logger.NewNoop(), cfg)
		Expect(runner.Run(context.Background())).To(Succeed())

		return reg.Snapshot()
	}

	entry := func(snap timing.Snapshot, tag string) timing.Entry {
		for _, e := range snap.Entries {
			if e.Tag == tag {
				return e
			}
		}

		Fail("no entry for tag " + tag)

		return timing.Entry{}
	}

	It("should record the explicit my_func tag once per qualifying iteration", func() {
		snap := run()

		e := entry(snap, "my_func")
		Expect(e.Calls).To(BeNumerically(">", 0))
		Expect(e.Calls).To(BeNumerically("<=", int64(cfg.Iterations)))
	})

	It("should record the nested triangular span once per iteration", func() {
		snap := run()
		Expect(entry(snap, "triangular").Calls).To(Equal(int64(cfg.Iterations)))
	})

	It("should record derived tags for the wrapped functions", func() {
		snap := run()

		derived := []string{}
		for _, e := range snap.Entries {
			derived = append(derived, e.Tag)
		}

		Expect(derived).To(ContainElement(ContainSubstring("Triangular")))
		Expect(derived).To(ContainElement(ContainSubstring("SquareDigest")))
	})

	It("should record one checksum span", func() {
		snap := run()
		Expect(entry(snap, "checksum").Calls).To(Equal(int64(1)))
	})

	It("should record the concurrent stage from every worker", func() {
		snap := run()

		perWorker := cfg.Iterations / cfg.Workers
		Expect(entry(snap, "worker").Calls).To(Equal(int64(cfg.Workers * perWorker)))
	})

	It("should stop between iterations when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runner := workload.New(reg, logger.NewNoop(), cfg)
		Expect(runner.Run(ctx)).To(MatchError(context.Canceled))
	})
})
