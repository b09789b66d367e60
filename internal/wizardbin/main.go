// Command wizardbin is a fixture program emulating the interactive
// onboarding wizard, for testing the stepwise driver. It prints the wizard's
// prompts in order and verifies that the bytes arriving on stdin are exactly
// the responses the fixed onboarding script transmits, raw escape sequences
// included.
//
// Flags:
//   - -stall N: never print prompt N (0-based); block forever instead
//   - -die N: exit abruptly (status 3) instead of printing prompt N
//   - -linger: after the last step, block forever instead of exiting
//   - -exit N: final exit status on full completion (default 0)
//
// On a response byte mismatch it prints the offending bytes and exits 2.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"
)

type step struct {
	prompt string
	want   string
}

// steps mirrors the fixed onboarding script, prompt for prompt.
var steps = []step{
	{"Continue? [y/n] ", "y"},
	{"Onboarding mode: [1] QuickStart  [2] Manual ", "\r"},
	{"Model/auth provider: [OpenAI] [Anthropic] ", "\x1b[B\r"},
	{"Anthropic auth method: [OAuth] [API key] ", "\x1b[B\r"},
	{"Use existing ANTHROPIC_API_KEY? [y/n] ", "y"},
	{"Default model: [claude-latest] ", "\r"},
	{"Select channel: [beta] [stable] ", "\x1b[A\r"},
	{"Enable hooks? [space to toggle] ", " \r"},
	{"Configure skills now? [y/n] ", "n"},
	{"Install daemon? [y/n] ", "y"},
	{"Start daemon? [y/n] ", "y"},
}

func main() {
	stall := flag.Int("stall", -1, "never print this prompt; block forever")
	die := flag.Int("die", -1, "exit abruptly instead of printing this prompt")
	linger := flag.Bool("linger", false, "block forever after the last step")
	exitCode := flag.Int("exit", 0, "exit status on full completion")
	flag.Parse()

	// Raw mode keeps the PTY from echoing responses back into the output
	// stream and delivers escape sequences byte by byte.
	fd := int(os.Stdin.Fd())
	if oldState, err := term.MakeRaw(fd); err == nil {
		defer term.Restore(fd, oldState)
	}

	fmt.Print("wizard: interactive onboarding\n")

	for i, s := range steps {
		if *stall == i {
			block()
		}
		if *die == i {
			os.Exit(3)
		}

		fmt.Print(s.prompt)
		if err := expectBytes(s.want); err != nil {
			fmt.Printf("\nwizard: step %d: %v\n", i, err)
			os.Exit(2)
		}
		fmt.Print("\n")
	}

	fmt.Print("wizard: all steps complete\n")
	if *linger {
		block()
	}
	os.Exit(*exitCode)
}

// expectBytes reads from stdin until exactly want has arrived, failing on
// the first byte that diverges.
func expectBytes(want string) error {
	got := make([]byte, 0, len(want))
	buf := make([]byte, 1)
	for len(got) < len(want) {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return fmt.Errorf("read: %v (got %q so far)", err, got)
		}
		if n == 0 {
			continue
		}
		got = append(got, buf[0])
		if got[len(got)-1] != want[len(got)-1] {
			return fmt.Errorf("response mismatch: got %q, want %q", got, want)
		}
	}
	return nil
}

func block() {
	select {}
}
