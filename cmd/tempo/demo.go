package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/tempo/internal/config"
	"github.com/smykla-skalski/tempo/internal/workload"
	"github.com/smykla-skalski/tempo/pkg/logger"
	"github.com/smykla-skalski/tempo/pkg/timing"
)

var (
	csvFlag        bool
	precisionFlag  int
	iterationsFlag int
	workersFlag    int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demo workload and print timing statistics",
	Long: `Run a synthetic workload exercising every timing entry point, then
print the accumulated statistics. The report is emitted on normal
termination, including an interrupt caught mid-run.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(
		&csvFlag,
		"csv",
		false,
		"Emit the report as comma-delimited values",
	)
	demoCmd.Flags().IntVar(
		&precisionFlag,
		"precision",
		0,
		"Decimal places for the frac and rate columns",
	)
	demoCmd.Flags().IntVar(
		&iterationsFlag,
		"iterations",
		0,
		"Number of workload loop iterations",
	)
	demoCmd.Flags().IntVar(
		&workersFlag,
		"workers",
		0,
		"Number of goroutines in the concurrent stage",
	)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	loader, err := config.NewLoader(configPath)
	if err != nil {
		return err
	}

	cfg, err := loader.Load(demoFlags(cmd))
	if err != nil {
		return err
	}

	log := logger.NewTextLogger(os.Stderr, logger.LevelFromFlags(debugMode, traceMode))

	reg := timing.New()

	exit := timing.NewExitReport(
		timing.NewReporter(reg, cfg.Report.Options()),
		os.Stdout,
	)
	defer func() {
		if emitErr := exit.Emit(); emitErr != nil {
			log.Error("failed to emit report", "error", emitErr)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := workload.New(reg, log, cfg.Workload)
	if err := runner.Run(ctx); err != nil {
		// The deferred report still covers the interrupted run.
		return errors.Wrap(err, "workload stopped early")
	}

	return nil
}

// demoFlags maps the changed CLI flags onto config paths for the loader.
func demoFlags(cmd *cobra.Command) map[string]any {
	flags := map[string]any{}

	if csvFlag {
		flags["report.format"] = string(timing.FormatCSV)
	}

	if cmd.Flags().Changed("precision") {
		flags["report.precision"] = precisionFlag
	}

	if cmd.Flags().Changed("iterations") {
		flags["workload.iterations"] = iterationsFlag
	}

	if cmd.Flags().Changed("workers") {
		flags["workload.workers"] = workersFlag
	}

	return flags
}
