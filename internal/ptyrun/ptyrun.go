// Package ptyrun provides low-level pseudo-terminal process spawning and
// shell resolution. It is internal to the stepwise package.
package ptyrun

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Config holds the spawn parameters for a PTY-backed process.
type Config struct {
	Env  []string // appended to the parent environment, "KEY=VALUE" entries
	Dir  string   // working directory; empty means inherit
	Cols uint16   // terminal width; 0 leaves the PTY default
	Rows uint16   // terminal height; 0 leaves the PTY default
}

// Proc is a shell child process attached to a pseudo-terminal. Reads and
// writes go through the PTY master, so the child sees a real terminal.
type Proc struct {
	cmd    *exec.Cmd
	master *os.File
}

// Start runs "<shell> -c <command>" on a freshly allocated pseudo-terminal.
// The child's combined stdout/stderr arrives on the master; bytes written to
// the master reach the child's stdin as keyboard input.
func Start(shell, command string, cfg Config) (*Proc, error) {
	cmd := exec.Command(shell, "-c", command)
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}

	var master *os.File
	var err error
	if cfg.Cols > 0 && cfg.Rows > 0 {
		master, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: cfg.Rows, Cols: cfg.Cols})
	} else {
		master, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, &Error{Op: "start", Command: command, Err: err}
	}

	return &Proc{cmd: cmd, master: master}, nil
}

// Read reads child output from the PTY master. After the child exits the
// read fails (EIO on Linux, EOF elsewhere); callers treat any error as
// end of stream.
func (p *Proc) Read(b []byte) (int, error) {
	return p.master.Read(b)
}

// Write delivers bytes to the child's input.
func (p *Proc) Write(b []byte) (int, error) {
	n, err := p.master.Write(b)
	if err != nil {
		return n, &Error{Op: "write", Err: err}
	}
	return n, nil
}

// CloseMaster closes the PTY master. The child, if still running, loses its
// controlling terminal.
func (p *Proc) CloseMaster() error {
	if err := p.master.Close(); err != nil {
		return &Error{Op: "close", Err: err}
	}
	return nil
}

// Kill forcibly terminates the child.
func (p *Proc) Kill() error {
	if p.cmd.Process == nil {
		return &Error{Op: "kill", Err: errors.New("process not started")}
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return &Error{Op: "kill", Err: err}
	}
	return nil
}

// Pid returns the child's process ID, or -1 before it has started.
func (p *Proc) Pid() int {
	if p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// Wait reaps the child and returns its exit status. Must be called exactly
// once, after the output stream has been drained.
func (p *Proc) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), nil
	}
	return 127, &Error{Op: "wait", Err: err}
}

// Error represents a PTY process operation failure.
type Error struct {
	Op      string
	Command string
	Err     error
}

func (e *Error) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("pty %s failed for %q: %v", e.Op, e.Command, e.Err)
	}
	return fmt.Sprintf("pty %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ResolveShell determines the shell binary by checking, in order:
// 1. the configured path
// 2. the STEPWISE_SHELL environment variable
// 3. /bin/bash
// 4. $PATH lookup for sh
func ResolveShell(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	if envShell := os.Getenv("STEPWISE_SHELL"); envShell != "" {
		return envShell, nil
	}

	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash", nil
	}

	found, err := exec.LookPath("sh")
	if err != nil {
		return "", fmt.Errorf("no usable shell: %w", err)
	}
	return found, nil
}
