package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/stepwise-sh/stepwise"
)

// consoleReporter prints human-readable progress lines for each script step
// and renders failure diagnostics, including the buffered pre-failure
// output. The wizard's own output is mirrored live by the session itself, so
// these lines interleave with it the way a person watching the run would
// expect.
type consoleReporter struct {
	out     io.Writer
	profile termenv.Profile
}

func newConsoleReporter(w io.Writer) *consoleReporter {
	return &consoleReporter{
		out:     w,
		profile: termenv.ColorProfile(),
	}
}

func (r *consoleReporter) styled(s string, color string) string {
	return termenv.String(s).Foreground(r.profile.Color(color)).String()
}

func (r *consoleReporter) StepStart(i, total int, step stepwise.Step) {
	fmt.Fprintf(r.out, "\n%s waiting for: %s (%s)\n",
		r.styled(fmt.Sprintf(">>> [%d/%d]", i+1, total), "6"), step.Expect, step.Desc)
}

func (r *consoleReporter) StepMatched(i, total int, step stepwise.Step, matched string) {
	fmt.Fprintf(r.out, "%s matched %q, sending %q\n",
		r.styled(">>>", "2"), matched, step.Send)
}

func (r *consoleReporter) Draining() {
	fmt.Fprintf(r.out, "\n%s waiting for process to finish...\n", r.styled(">>>", "6"))
}

// failure reports a mid-script abort: which step failed, why, and everything
// the wizard printed since the previous match.
func (r *consoleReporter) failure(err error) {
	fmt.Fprintf(r.out, "\n%s %v\n", r.styled(">>> FAILED:", "1"), err)

	var expectErr *stepwise.ExpectError
	if errors.As(err, &expectErr) {
		fmt.Fprintf(r.out, "%s output since previous match:\n%s\n",
			r.styled(">>>", "1"), formatBefore(expectErr.Before))
	}
}

// drainFailure reports a wizard that answered every prompt but never
// finished.
func (r *consoleReporter) drainFailure(err *stepwise.StepError) {
	fmt.Fprintf(r.out, "\n%s all steps answered, but the process did not finish: %v\n",
		r.styled(">>> FAILED:", "1"), err.Err)

	var expectErr *stepwise.ExpectError
	if errors.As(err.Err, &expectErr) {
		fmt.Fprintf(r.out, "%s trailing output:\n%s\n",
			r.styled(">>>", "1"), formatBefore(expectErr.Before))
	}
}

func (r *consoleReporter) done(exitCode int) {
	fmt.Fprintf(r.out, "\n%s exit status: %d\n", r.styled(">>>", "2"), exitCode)
	fmt.Fprintln(r.out, "Done!")
}

const beforeBoxWidth = 80

// formatBefore renders buffered output inside a box border so it stands
// apart from the live mirror above it.
func formatBefore(before string) string {
	if strings.TrimSpace(before) == "" {
		return "    (no output buffered)"
	}

	before = strings.ReplaceAll(before, "\r\n", "\n")
	before = strings.TrimRight(before, "\n")
	lines := strings.Split(before, "\n")

	var b strings.Builder
	border := strings.Repeat("─", beforeBoxWidth)

	fmt.Fprintf(&b, "    ┌%s┐\n", border)
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) > beforeBoxWidth {
			line = line[:beforeBoxWidth]
		}
		if len(line) < beforeBoxWidth {
			line += strings.Repeat(" ", beforeBoxWidth-len(line))
		}
		fmt.Fprintf(&b, "    │%s│\n", line)
	}
	fmt.Fprintf(&b, "    └%s┘", border)

	return b.String()
}
