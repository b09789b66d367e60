package stepwise

import (
	"fmt"
	"time"
)

// ErrorKind classifies why a wait failed.
type ErrorKind int

const (
	// KindTimeout means the pattern was not observed within the time budget.
	KindTimeout ErrorKind = iota
	// KindEOF means the child closed its output stream before the pattern
	// was observed.
	KindEOF
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindEOF:
		return "eof"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ExpectError reports a failed wait. Before holds all output buffered since
// the previous successful match, for diagnosis of a drifted flow.
type ExpectError struct {
	Kind    ErrorKind
	Waiting string        // description of what was awaited
	Timeout time.Duration // budget that elapsed, for KindTimeout
	Before  string        // unconsumed output at the time of failure
}

func (e *ExpectError) Error() string {
	switch e.Kind {
	case KindEOF:
		return fmt.Sprintf("output stream closed while waiting for %s", e.Waiting)
	default:
		return fmt.Sprintf("timed out after %v waiting for %s", e.Timeout, e.Waiting)
	}
}

// Expect blocks until m locates a match in the child's unconsumed output,
// the timeout expires, or the child closes its output stream. On success it
// returns the matched text and consumes everything through the end of the
// match, so later calls never re-scan it. On failure it returns a
// *ExpectError.
func (s *Session) Expect(m Matcher, wopts ...WaitOption) (string, error) {
	timeout, pollInterval, err := s.opts.waitParams(wopts)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(timeout)
	for {
		unconsumed, closed := s.snapshot()

		loc, desc := m(unconsumed)
		if loc != nil {
			s.consume(loc[1])
			return unconsumed[loc[0]:loc[1]], nil
		}

		if closed {
			return "", &ExpectError{Kind: KindEOF, Waiting: desc, Before: unconsumed}
		}
		if time.Now().After(deadline) {
			return "", &ExpectError{Kind: KindTimeout, Waiting: desc, Timeout: timeout, Before: unconsumed}
		}

		time.Sleep(pollInterval)
	}
}

// ExpectEOF blocks until the child closes its output stream, then reaps it
// so ExitCode is available. A *ExpectError of KindTimeout is returned when
// the stream stays open past the deadline.
func (s *Session) ExpectEOF(wopts ...WaitOption) error {
	timeout, _, err := s.opts.waitParams(wopts)
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return nil
	case <-time.After(timeout):
		unconsumed, _ := s.snapshot()
		return &ExpectError{
			Kind:    KindTimeout,
			Waiting: "output stream to close",
			Timeout: timeout,
			Before:  unconsumed,
		}
	}
}
