package timing

import (
	"io"
	"sync"
)

// ExitReport emits a final report exactly once, no matter how many
// shutdown paths invoke it. A host registers it explicitly, typically as
// a defer in main plus a signal handler; whichever fires first wins and
// the rest are no-ops. Nothing runs if the process aborts in a way that
// bypasses normal shutdown.
type ExitReport struct {
	rep  *Reporter
	sink io.Writer

	once sync.Once
	err  error
}

// NewExitReport wraps rep so its report is written to sink at most once.
func NewExitReport(rep *Reporter, sink io.Writer) *ExitReport {
	return &ExitReport{rep: rep, sink: sink}
}

// Emit writes the report on first call and returns the write result.
// Subsequent calls do nothing and return the first call's result.
func (e *ExitReport) Emit() error {
	e.once.Do(func() {
		e.err = e.rep.Write(e.sink)
	})

	return e.err
}
