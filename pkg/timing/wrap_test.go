package timing_test

import (
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tempo/pkg/timing"
)

func sumTo(n int) int {
	total := 0
	for i := range n {
		total += i
	}

	return total
}

func divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}

	return a / b, nil
}

var _ = Describe("Wrap", func() {
	var reg *timing.Registry

	BeforeEach(func() {
		reg = timing.New(timing.WithClock(newManualClock()))
	})

	Describe("explicit tags", func() {
		It("should record under the explicit tag only", func() {
			wrapped := timing.Wrap1(reg, "my_func", sumTo)

			wrapped(10)
			wrapped(10)

			snap := reg.Snapshot()
			Expect(snap.Entries).To(HaveLen(1))
			Expect(snap.Entries[0].Tag).To(Equal("my_func"))
			Expect(snap.Entries[0].Calls).To(Equal(int64(2)))
		})

		It("should forward arguments and return values unchanged", func() {
			wrapped := timing.Wrap1(reg, "sum", sumTo)
			Expect(wrapped(5)).To(Equal(10))
		})
	})

	Describe("derived tags", func() {
		It("should derive the tag from the function's qualified name", func() {
			wrapped := timing.Wrap1(reg, "", sumTo)
			wrapped(10)

			snap := reg.Snapshot()
			Expect(snap.Entries).To(HaveLen(1))
			Expect(snap.Entries[0].Tag).To(ContainSubstring("sumTo"))
			Expect(snap.Entries[0].Tag).To(ContainSubstring("timing_test"))
		})

		It("should fall back deterministically for non-function values", func() {
			Expect(timing.FuncName(42)).To(Equal("func"))
		})
	})

	Describe("error propagation", func() {
		It("should propagate errors unchanged and still record the call", func() {
			wrapped := timing.WrapErr1(reg, "div", func(b int) (int, error) {
				return divide(1, b)
			})

			_, err := wrapped(0)
			Expect(err).To(MatchError(ContainSubstring("division by zero")))

			q, err := wrapped(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(q).To(Equal(1))

			snap := reg.Snapshot()
			Expect(snap.Entries[0].Tag).To(Equal("div"))
			Expect(snap.Entries[0].Calls).To(Equal(int64(2)))
		})
	})

	Describe("other arities", func() {
		It("should wrap a zero-argument function", func() {
			calls := 0
			wrapped := timing.Wrap(reg, "zero", func() int {
				calls++

				return calls
			})

			Expect(wrapped()).To(Equal(1))
			Expect(wrapped()).To(Equal(2))
			Expect(reg.Snapshot().Entries[0].Calls).To(Equal(int64(2)))
		})

		It("should wrap a two-argument function", func() {
			concat := timing.Wrap2(reg, "concat", func(a, b string) string {
				return a + b
			})

			Expect(concat("ab", "cd")).To(Equal("abcd"))
		})

		It("should wrap an error-returning function without arguments", func() {
			wrapped := timing.WrapErr(reg, "load", func() (time.Duration, error) {
				return time.Second, nil
			})

			d, err := wrapped()
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(time.Second))
		})
	})
})
