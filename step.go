package stepwise

import "fmt"

// Step is one expected-prompt/response unit in a script.
type Step struct {
	Expect string // regular expression locating the prompt
	Send   string // literal bytes transmitted once the prompt appears
	Desc   string // human-readable label
}

// Script is an immutable ordered sequence of steps, satisfied strictly in
// order. Each step is consumed exactly once and never re-attempted.
type Script []Step

// Reporter receives progress notifications from RunScript. Implementations
// must not block; they are called from the driving goroutine between waits.
type Reporter interface {
	// StepStart is called before waiting for step i's prompt.
	StepStart(i, total int, step Step)
	// StepMatched is called after step i's prompt appeared, just before the
	// response is transmitted.
	StepMatched(i, total int, step Step, matched string)
	// Draining is called after the last response, while waiting for the
	// child to close its output stream.
	Draining()
}

type nopReporter struct{}

func (nopReporter) StepStart(int, int, Step)           {}
func (nopReporter) StepMatched(int, int, Step, string) {}
func (nopReporter) Draining()                          {}

// StepError reports a script run aborted at a specific step. Index equals
// len(script) when the failure happened in the drain phase after the last
// step. It wraps the underlying *ExpectError or write error.
type StepError struct {
	Index int
	Desc  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Desc, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RunScript drives the session through the script: for each step in order it
// waits for the step's pattern with the per-call (or session default)
// timeout, transmits the step's response, and moves on. A timeout or
// premature stream closure at any step aborts immediately; remaining steps
// are not attempted. After the last step it drains the stream to EOF and
// returns the child's exit status.
func RunScript(sess *Session, script Script, wopts ...WaitOption) (int, error) {
	r := sess.opts.reporter
	total := len(script)

	for i, step := range script {
		r.StepStart(i, total, step)

		matched, err := sess.Expect(Pattern(step.Expect), wopts...)
		if err != nil {
			return 0, &StepError{Index: i, Desc: step.Desc, Err: err}
		}
		r.StepMatched(i, total, step, matched)

		if err := sess.Send(step.Send); err != nil {
			return 0, &StepError{Index: i, Desc: step.Desc, Err: err}
		}
	}

	r.Draining()
	drainWopts := wopts
	if d := sess.opts.drainTimeout; d > 0 {
		drainWopts = append(append([]WaitOption{}, wopts...), WithinTimeout(d))
	}
	if err := sess.ExpectEOF(drainWopts...); err != nil {
		return 0, &StepError{Index: total, Desc: "wait for process to finish", Err: err}
	}

	return sess.ExitCode(), nil
}
