package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RaimNist/web-larek/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
}

// NewTraceCommand creates the trace command: inspect a recorded event
// journal.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a recorded event journal",
		Long: `List sessions of a SQLite event journal, or dump one session's trace.

Without --session the distinct session tokens are listed, oldest first.
With --session every recorded emission of that session is printed in
sequence order.

Example:
  larek trace --db ./larek.db
  larek trace --db ./larek.db --session 0190fa80-...`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite journal (required)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to dump")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(cmd *cobra.Command, opts *TraceOptions) error {
	j, err := journal.Open(opts.Database, journal.UUIDv7Generator{})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	out := cmd.OutOrStdout()

	if opts.Session == "" {
		sessions, err := j.Sessions()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		if opts.Format == "json" {
			return WriteJSON(out, sessions)
		}
		for _, s := range sessions {
			fmt.Fprintln(out, s)
		}
		fmt.Fprintf(out, "\n%d session(s)\n", len(sessions))
		return nil
	}

	entries, err := j.Entries(opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	if opts.Format == "json" {
		return WriteJSON(out, entries)
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%d\t%s\t%s\n", e.Seq, e.Name, e.Payload)
	}
	return nil
}
