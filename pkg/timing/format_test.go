package timing_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/tempo/pkg/timing"
)

var _ = Describe("Format", func() {
	representative := []time.Duration{
		0,
		time.Microsecond,
		59*time.Second + 999999*time.Microsecond,
		61 * time.Second,
		3661 * time.Second,
		90000 * time.Second,
	}

	It("should produce identical widths for every magnitude", func() {
		for _, d := range representative {
			Expect(timing.FormatDuration(d, false)).To(
				HaveLen(timing.FormattedWidth),
				"width mismatch for %v", d,
			)
		}
	})

	It("should render zero as a bare seconds field when abbreviated", func() {
		Expect(timing.FormatDuration(0, true)).To(Equal("0.000000s"))
	})

	It("should render sub-second durations with microsecond precision", func() {
		Expect(timing.FormatDuration(time.Microsecond, true)).To(Equal("0.000001s"))
	})

	It("should keep just-under-a-minute durations in the seconds field", func() {
		d := 59*time.Second + 999999*time.Microsecond
		Expect(timing.FormatDuration(d, true)).To(Equal("59.999999s"))
	})

	It("should truncate sub-microsecond remainders instead of rounding up", func() {
		d := 59*time.Second + 999999500*time.Nanosecond
		Expect(timing.FormatDuration(d, true)).To(Equal("59.999999s"))
	})

	It("should never round the seconds field into the next minute", func() {
		d := time.Minute + 59*time.Second + 999999999*time.Nanosecond
		Expect(timing.FormatDuration(d, true)).To(Equal("1m 59.999999s"))
	})

	It("should render a minute component for 61 seconds", func() {
		Expect(timing.FormatDuration(61*time.Second, true)).To(Equal("1m  1.000000s"))
	})

	It("should render hour and minute components for 3661 seconds", func() {
		Expect(timing.FormatDuration(3661*time.Second, true)).To(Equal("1h  1m  1.000000s"))
	})

	It("should render a non-blank days and hours field for 90000 seconds", func() {
		s := timing.FormatDuration(90000*time.Second, false)
		Expect(s).To(ContainSubstring("1d"))
		Expect(s).To(ContainSubstring("1h"))
	})

	It("should blank-pad components that are zero", func() {
		s := timing.FormatDuration(61*time.Second, false)
		Expect(s).NotTo(ContainSubstring("d"))
		Expect(s).NotTo(ContainSubstring("h"))
		Expect(strings.HasPrefix(s, " ")).To(BeTrue())
	})

	It("should clamp negative durations to zero", func() {
		Expect(timing.FormatDuration(-time.Second, true)).To(Equal("0.000000s"))
	})
})
