package stepwise

import (
	"fmt"
	"os"
	"sync"

	"github.com/stepwise-sh/stepwise/internal/ptyrun"
)

// Session is a handle to one interactive child process running on a
// pseudo-terminal. It owns the child and the PTY for the duration of a run;
// Close releases both.
type Session struct {
	proc *ptyrun.Proc
	opts options

	mu       sync.Mutex
	buf      []byte // everything the child has written since start
	consumed int    // offset of the first byte not yet claimed by a match
	closed   bool   // the child's output stream has closed
	exitCode int

	done      chan struct{} // closed once the child has been reaped
	closeOnce sync.Once
	closeErr  error
}

// Start launches command inside a shell ("<shell> -c <command>") attached to
// a new pseudo-terminal and begins mirroring its combined output.
//
// The shell is resolved by checking, in order: the WithShell option, the
// STEPWISE_SHELL environment variable, /bin/bash, and finally sh on $PATH.
func Start(command string, userOpts ...Option) (*Session, error) {
	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}
	if opts.echo == nil {
		opts.echo = os.Stdout
	}
	if opts.reporter == nil {
		opts.reporter = nopReporter{}
	}

	shell, err := ptyrun.ResolveShell(opts.shell)
	if err != nil {
		return nil, fmt.Errorf("stepwise: start: %w", err)
	}

	proc, err := ptyrun.Start(shell, command, ptyrun.Config{
		Env:  opts.env,
		Dir:  opts.dir,
		Cols: opts.cols,
		Rows: opts.rows,
	})
	if err != nil {
		return nil, fmt.Errorf("stepwise: start: %w", err)
	}

	sess := &Session{
		proc: proc,
		opts: opts,
		done: make(chan struct{}),
	}
	go sess.readLoop()

	return sess, nil
}

// readLoop copies child output into the shared buffer and tees it to the
// echo writer. It runs until the PTY read side fails, which on every
// platform we support is how a child exit manifests, then reaps the child.
func (s *Session) readLoop() {
	chunk := make([]byte, 32*1024)
	for {
		n, err := s.proc.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf = append(s.buf, chunk[:n]...)
			s.mu.Unlock()
			_, _ = s.opts.echo.Write(chunk[:n])
		}
		if err != nil {
			break
		}
	}

	code, _ := s.proc.Wait()

	s.mu.Lock()
	s.closed = true
	s.exitCode = code
	s.mu.Unlock()
	close(s.done)
}

// Send writes the literal bytes of s to the child's input without waiting
// for any acknowledgment. Control and escape sequences pass through
// untouched; see the key constants in this package.
func (s *Session) Send(str string) error {
	return s.SendBytes([]byte(str))
}

// SendBytes writes raw bytes to the child's input.
func (s *Session) SendBytes(b []byte) error {
	if _, err := s.proc.Write(b); err != nil {
		return fmt.Errorf("stepwise: send: %w", err)
	}
	return nil
}

// Transcript returns everything the child has written so far, raw and
// unconsumed-status-agnostic, in arrival order.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf)
}

// ExitCode blocks until the child has exited and returns its exit status.
// It is intended to be called after ExpectEOF or a completed RunScript.
func (s *Session) ExitCode() int {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode
}

// Pid returns the child's process ID.
func (s *Session) Pid() int {
	return s.proc.Pid()
}

// Close terminates the child if it is still running and releases the
// pseudo-terminal. It is idempotent and safe on every exit path.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		select {
		case <-s.done:
			// Already exited and reaped.
		default:
			_ = s.proc.Kill()
			<-s.done
		}
		s.closeErr = s.proc.CloseMaster()
	})
	return s.closeErr
}

// snapshot returns the unconsumed output and whether the stream has closed.
func (s *Session) snapshot() (unconsumed string, closed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf[s.consumed:]), s.closed
}

// consume advances the consumed offset by n bytes relative to the current
// unconsumed span.
func (s *Session) consume(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumed += n
}
