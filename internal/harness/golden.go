package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatTrace renders a trace as stable text, one emission per line:
// seq, wire name and compact JSON payload, tab-separated. The format is
// shared by golden files and the `larek run --trace` output.
func FormatTrace(trace []TraceEvent) string {
	var b strings.Builder
	for _, ev := range trace {
		fmt.Fprintf(&b, "%d\t%s\t%s\n", ev.Seq, ev.Name, ev.Payload)
	}
	return b.String()
}

// RunWithGolden executes the scenario and compares its full event trace
// against testdata/{scenario.Name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc Scenario) *Result {
	t.Helper()

	runner := NewRunner(sc)
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("scenario %s failed to run: %v", sc.Name, err)
	}

	if failures := Check(sc, runner.App(), runner.Gateway()); len(failures) > 0 {
		t.Fatalf("scenario %s expectations failed:\n  %s", sc.Name, strings.Join(failures, "\n  "))
	}

	g := goldie.New(t)
	g.Assert(t, sc.Name, []byte(FormatTrace(result.Trace)))
	return result
}
