package timing

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Format selects the report rendering.
type Format string

const (
	// FormatTable renders an aligned human-readable table with a total
	// time footer.
	FormatTable Format = "table"

	// FormatCSV renders a comma-delimited machine-readable stream with
	// raw numeric values and no borders or footer.
	FormatCSV Format = "csv"
)

// ErrInvalidFormat is returned when a report format name is not
// recognized.
var ErrInvalidFormat = errors.New("invalid report format")

// ParseFormat parses a report format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", errors.Wrapf(ErrInvalidFormat, "%q", s)
	}
}

// DefaultPrecision is the number of decimal places used for the frac and
// rate columns when ReportOptions.Precision is not set.
const DefaultPrecision = 6

// ReportOptions configures a Reporter. The zero value renders a table
// with DefaultPrecision decimal places.
type ReportOptions struct {
	// Format selects table or delimited output. Empty means table.
	Format Format

	// Precision is the number of decimal places for the frac and rate
	// columns. Values below 1 mean DefaultPrecision.
	Precision int
}

// Reporter renders a registry snapshot as derived per-tag statistics.
type Reporter struct {
	reg  *Registry
	opts ReportOptions
}

// NewReporter creates a Reporter over reg, normalizing opts defaults.
func NewReporter(reg *Registry, opts ReportOptions) *Reporter {
	if opts.Format == "" {
		opts.Format = FormatTable
	}

	if opts.Precision < 1 {
		opts.Precision = DefaultPrecision
	}

	return &Reporter{reg: reg, opts: opts}
}

// reportHeaders are the report columns, in output order.
var reportHeaders = []string{"tag", "frac", "time", "percall", "rate", "calls"}

// statRow holds the derived metrics for one tag.
type statRow struct {
	tag     string
	frac    float64 // NaN when total elapsed time is zero
	total   time.Duration
	perCall time.Duration
	rate    float64 // NaN when the cumulative duration is zero
	calls   int64
}

// deriveRows computes per-tag statistics from a snapshot. Divisions that
// would be undefined produce NaN markers instead of failing: frac when
// the process has no elapsed time yet, rate when every recorded duration
// rounded to zero. The per-call divisor is the call count, which is at
// least one for any entry that exists.
//
// Fractions are not normalized to sum to 1.0: regions may nest or
// overlap, so their wall-clock durations are not disjoint in general.
func deriveRows(snap Snapshot) []statRow {
	rows := make([]statRow, 0, len(snap.Entries))

	for _, e := range snap.Entries {
		row := statRow{
			tag:     e.Tag,
			total:   e.Total,
			perCall: e.Total / time.Duration(e.Calls),
			calls:   e.Calls,
		}

		if snap.Elapsed > 0 {
			row.frac = e.Total.Seconds() / snap.Elapsed.Seconds()
		} else {
			row.frac = math.NaN()
		}

		if e.Total > 0 {
			row.rate = float64(e.Calls) / e.Total.Seconds()
		} else {
			row.rate = math.NaN()
		}

		rows = append(rows, row)
	}

	return rows
}

// Write takes a snapshot of the registry and emits the rendered report to
// w, one line at a time. Row order follows the snapshot's insertion
// order.
func (rp *Reporter) Write(w io.Writer) error {
	snap := rp.reg.Snapshot()

	var lines []string

	switch rp.opts.Format {
	case FormatCSV:
		lines = rp.csvLines(snap)
	default:
		tableLines, err := rp.tableLines(snap)
		if err != nil {
			return err
		}

		lines = tableLines
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "write report line")
		}
	}

	return nil
}

// tableLines renders the aligned table bordered by separator lines that
// match the rendered table width, followed by the total elapsed time and
// a closing separator.
func (rp *Reporter) tableLines(snap Snapshot) ([]string, error) {
	var buf bytes.Buffer

	aligns := []tw.Align{
		tw.AlignLeft,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
	}

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Symbols: tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		})),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Header().Formatting().WithAutoFormat(tw.Off).Build().
			Alignment().WithPerColumn(aligns).Build().
			Row().Alignment().WithPerColumn(aligns).Build().
			Build()),
	)

	t.Header(reportHeaders)

	for _, row := range deriveRows(snap) {
		_ = t.Append([]string{
			row.tag,
			formatFloat(row.frac, rp.opts.Precision),
			FormatDuration(row.total, false),
			FormatDuration(row.perCall, false),
			formatFloat(row.rate, rp.opts.Precision),
			strconv.FormatInt(row.calls, 10),
		})
	}

	if err := t.Render(); err != nil {
		return nil, errors.Wrap(err, "render stats table")
	}

	body := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	width := 0
	for _, line := range body {
		if n := len(line); n > width {
			width = n
		}
	}

	sep := strings.Repeat("-", width)

	lines := make([]string, 0, len(body)+4)
	lines = append(lines, sep)
	lines = append(lines, body...)
	lines = append(lines, sep)
	lines = append(lines, "Total time: "+FormatDuration(snap.Elapsed, true))
	lines = append(lines, sep)

	return lines, nil
}

// csvLines renders the header line followed by one comma-joined row per
// tag with raw numeric values. An empty registry yields the header only.
func (rp *Reporter) csvLines(snap Snapshot) []string {
	lines := make([]string, 0, len(snap.Entries)+1)
	lines = append(lines, strings.Join(reportHeaders, ", "))

	for _, row := range deriveRows(snap) {
		lines = append(lines, strings.Join([]string{
			row.tag,
			rawFloat(row.frac),
			rawFloat(row.total.Seconds()),
			rawFloat(row.perCall.Seconds()),
			rawFloat(row.rate),
			strconv.FormatInt(row.calls, 10),
		}, ", "))
	}

	return lines
}

// formatFloat renders v with a fixed number of decimal places, or the
// NaN marker for undefined values.
func formatFloat(v float64, precision int) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'f', precision, 64)
}

// rawFloat renders v in its shortest exact form for machine consumption.
// NaN renders as its marker.
func rawFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
