package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/harness"
	"github.com/RaimNist/web-larek/internal/journal"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Trace   bool
	Journal string
}

// NewRunCommand creates the run command: execute a scenario file against
// an in-memory gateway and check its expectations.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a storefront scenario",
		Long: `Run a declarative shopping scenario against an in-memory gateway.

The scenario declares a catalog, user steps and expectations on the
final basket, total, checkout phase and accepted orders. The command
exits non-zero when an expectation fails.

Example:
  larek run scenarios/checkout.yaml
  larek run scenarios/checkout.yaml --trace --journal ./larek.db`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the full event trace")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the event stream into this SQLite journal")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *RunOptions, path string) error {
	sc, err := harness.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	var observers []func(*bus.Bus)
	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal, journal.UUIDv7Generator{})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer j.Close()
		observers = append(observers, func(b *bus.Bus) { j.Attach(b) })
		slog.Info("journaling session", "path", opts.Journal, "session", j.Session())
	}

	runner := harness.NewRunner(sc, observers...)
	result, err := runner.Run(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "scenario aborted", err)
	}

	failures := harness.Check(sc, runner.App(), runner.Gateway())

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeRunJSON(cmd, opts, sc, runner, result, failures)
	}

	fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	fmt.Fprintf(out, "phase:    %s\n", runner.App().Phase())
	fmt.Fprintf(out, "basket:   %v\n", runner.App().State().Basket())
	fmt.Fprintf(out, "total:    %s\n", FormatSynapses(runner.App().State().Total()))
	fmt.Fprintf(out, "orders:   %d\n", len(runner.Gateway().Orders()))

	if len(result.StepErrors) > 0 {
		fmt.Fprintf(out, "step errors:\n  %s\n", strings.Join(result.StepErrors, "\n  "))
	}

	if opts.Trace {
		fmt.Fprintf(out, "\ntrace:\n%s", harness.FormatTrace(result.Trace))
	}

	if len(failures) > 0 {
		fmt.Fprintf(out, "\nFAIL\n  %s\n", strings.Join(failures, "\n  "))
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(failures)))
	}
	fmt.Fprintln(out, "\nPASS")
	return nil
}

// runReport is the JSON shape of a scenario run.
type runReport struct {
	Scenario   string            `json:"scenario"`
	Phase      string            `json:"phase"`
	Basket     []string          `json:"basket"`
	Total      int               `json:"total"`
	Orders     int               `json:"orders"`
	Errors     map[string]string `json:"form_errors,omitempty"`
	StepErrors []string          `json:"step_errors,omitempty"`
	Failures   []string          `json:"failures,omitempty"`
	Trace      []traceLine       `json:"trace,omitempty"`
}

type traceLine struct {
	Seq     int64  `json:"seq"`
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

func writeRunJSON(cmd *cobra.Command, opts *RunOptions, sc harness.Scenario, runner *harness.Runner, result *harness.Result, failures []string) error {
	report := runReport{
		Scenario:   sc.Name,
		Phase:      runner.App().Phase().String(),
		Basket:     runner.App().State().Basket(),
		Total:      runner.App().State().Total(),
		Orders:     len(runner.Gateway().Orders()),
		StepErrors: result.StepErrors,
		Failures:   failures,
	}
	if errs := runner.App().State().Errors(); len(errs) > 0 {
		report.Errors = errs
	}
	if opts.Trace {
		for _, ev := range result.Trace {
			report.Trace = append(report.Trace, traceLine{Seq: ev.Seq, Name: ev.Name, Payload: ev.Payload})
		}
	}
	sort.Strings(report.Failures)

	if err := WriteJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if len(failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(failures)))
	}
	return nil
}
