package stepwise

import (
	"fmt"
	"io"
	"time"
)

type options struct {
	shell        string
	env          []string
	dir          string
	cols         uint16
	rows         uint16
	echo         io.Writer
	timeout      time.Duration
	drainTimeout time.Duration
	pollInterval time.Duration
	reporter     Reporter
}

// Option configures a Session created by Start.
type Option func(*options)

// WithShell sets the shell used to run the command. Defaults to /bin/bash
// (resolved as documented on Start). The STEPWISE_SHELL environment variable
// can also be used as a fallback before the default.
func WithShell(shell string) Option {
	return func(o *options) {
		o.shell = shell
	}
}

// WithEnv appends environment variables to the child's environment.
// Each entry should be in "KEY=VALUE" format.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithDir sets the working directory for the command.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithSize sets the pseudo-terminal dimensions (columns x rows).
func WithSize(width, height int) Option {
	return func(o *options) {
		o.cols = uint16(width)
		o.rows = uint16(height)
	}
}

// WithEcho sets the writer that mirrors the child's output as it arrives.
// Defaults to os.Stdout. Use io.Discard to silence the mirror.
func WithEcho(w io.Writer) Option {
	return func(o *options) {
		o.echo = w
	}
}

// WithTimeout sets the default timeout for Expect, ExpectEOF, and each
// RunScript step.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithDrainTimeout sets the time budget RunScript allows for the child to
// close its output stream after the last response. A value of 0 falls back
// to the WithTimeout budget.
func WithDrainTimeout(d time.Duration) Option {
	return func(o *options) {
		o.drainTimeout = d
	}
}

// WithPollInterval sets the default polling interval for waits.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.pollInterval = d
	}
}

// WithReporter sets the Reporter that receives RunScript progress
// notifications. Defaults to a no-op reporter.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WaitOption configures a single Expect, ExpectEOF, or RunScript call.
type WaitOption func(*waitOptions)

type waitOptions struct {
	timeout      time.Duration
	pollInterval time.Duration
}

// WithinTimeout overrides the wait timeout for a single call.
// A value of 0 means "use defaults". Negative values are rejected.
func WithinTimeout(d time.Duration) WaitOption {
	return func(o *waitOptions) {
		o.timeout = d
	}
}

// WithWaitPollInterval overrides the polling interval for a single call.
// A value of 0 means "use defaults". Negative values are rejected.
// Positive values under 10ms are clamped to 10ms.
func WithWaitPollInterval(d time.Duration) WaitOption {
	return func(o *waitOptions) {
		o.pollInterval = d
	}
}

const (
	defaultWidth        = 80
	defaultHeight       = 24
	defaultTimeout      = 2 * time.Minute
	defaultPollInterval = 50 * time.Millisecond
	minPollInterval     = 10 * time.Millisecond
)

func defaultOptions() options {
	return options{
		cols:         defaultWidth,
		rows:         defaultHeight,
		timeout:      defaultTimeout,
		pollInterval: defaultPollInterval,
	}
}

// waitParams resolves the effective timeout and poll interval for one wait
// call, applying per-call overrides and the clamping rules.
func (o *options) waitParams(wopts []WaitOption) (timeout, pollInterval time.Duration, err error) {
	wo := waitOptions{}
	for _, opt := range wopts {
		opt(&wo)
	}

	timeout = o.timeout
	if wo.timeout > 0 {
		timeout = wo.timeout
	} else if wo.timeout < 0 {
		return 0, 0, fmt.Errorf("stepwise: negative timeout: %v", wo.timeout)
	}

	pollInterval = o.pollInterval
	if wo.pollInterval > 0 {
		pollInterval = wo.pollInterval
	} else if wo.pollInterval < 0 {
		return 0, 0, fmt.Errorf("stepwise: negative poll interval: %v", wo.pollInterval)
	}
	if pollInterval < minPollInterval {
		pollInterval = minPollInterval
	}

	return timeout, pollInterval, nil
}
