// Package stepwise drives interactive command-line programs through a
// scripted prompt/response sequence inside a pseudo-terminal.
//
// stepwise spawns a shell running the target command on a real PTY, mirrors
// everything the child prints, waits for known prompts, and injects literal
// keystrokes (including raw arrow-key escape sequences) in response. When the
// flow drifts from the expected prompt sequence it fails loudly with all
// output captured so far.
//
// # Quick Start
//
//	sess, err := stepwise.Start("./wizard --install")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sess.Close()
//
//	code, err := stepwise.RunScript(sess, stepwise.Script{
//		{Expect: `Continue\?`, Send: "y", Desc: "confirm continue"},
//		{Expect: `Select channel`, Send: stepwise.Up + stepwise.Enter, Desc: "arrow up + enter"},
//	})
//
// # Session Lifecycle
//
// [Start] launches a shell ("/bin/bash -c <command>" by default) attached to
// a pseudo-terminal allocated through github.com/creack/pty. A background
// reader copies the child's combined output into an internal buffer and tees
// it to an echo writer (os.Stdout by default) so the run stays observable
// even while a wait is blocking. [Session.Close] terminates a still-running
// child and releases the PTY; it is safe to call on every exit path.
//
// # Waiting and Matchers
//
// [Session.Expect] polls the unconsumed portion of the output buffer until a
// [Matcher] locates the expected prompt, the timeout expires, or the child
// closes its output stream. Matching always takes the earliest occurrence in
// unconsumed output; text consumed by a previous match is never scanned
// again.
//
// Wait behavior:
//
//   - Defaults: 2m timeout, 50ms poll interval
//   - Per-session overrides: [WithTimeout], [WithPollInterval]
//   - Per-call overrides: [WithinTimeout], [WithWaitPollInterval]
//   - Poll intervals under 10ms are clamped to 10ms
//   - Negative timeout or poll values are rejected immediately
//
// Built-in matchers are [Text], [Pattern], and [Any].
//
// # Scripts
//
// A [Script] is an immutable ordered sequence of [Step] records. [RunScript]
// consumes it strictly in order: wait for the step's pattern, transmit the
// step's response bytes, move on. A timeout or premature stream closure at
// any step aborts the run immediately; no step is retried, skipped, or
// re-attempted. After the last step the driver drains the stream to EOF and
// reports the child's own exit status. [Onboard] is the fixed script for the
// onboarding wizard this tool was built to debug.
//
// # Diagnostics
//
// Failures carry a [StepError] wrapping an [ExpectError] with the awaited
// description and all output buffered since the previous match, so a drifted
// flow can be diagnosed from the error alone. Progress can additionally be
// observed through a [Reporter].
//
// # Transcripts
//
// The full raw session transcript is retained. [Session.MatchTranscript]
// compares it against golden files under testdata. Set STEPWISE_UPDATE=1 to
// create or update golden files.
//
// # Requirements
//
//   - Go 1.24+
//   - Linux or macOS (a working /dev/ptmx)
//
// The shell is resolved in this order:
//
//   - [WithShell]
//   - STEPWISE_SHELL
//   - /bin/bash, then sh on PATH
package stepwise

// Version is the current stepwise release.
const Version = "0.1.0"
