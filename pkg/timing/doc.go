// Package timing measures elapsed wall-clock time for named code regions
// and accumulates per-tag totals and call counts for the life of a process.
//
// Callers open a Span directly around a code block, or wrap a function so
// every invocation is timed. Both paths funnel into a Registry, and a
// Reporter renders the accumulated state as an aligned table or a
// comma-delimited stream at any point.
//
//	reg := timing.New()
//
//	span := reg.Start("load")
//	load()
//	span.Stop()
//
//	fetch = timing.Wrap1(reg, "", fetch)
//
//	rep := timing.NewReporter(reg, timing.ReportOptions{})
//	_ = rep.Write(os.Stdout)
//
// The Registry is safe for concurrent use from any number of goroutines.
package timing
