package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stepwise-sh/stepwise"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Drive the onboarding wizard through the fixed prompt script",
	Long: `Runs the given shell command inside a pseudo-terminal and answers its
prompts with the fixed onboarding script: continue confirmation, mode,
provider and auth method selection, credential reuse, model and channel
selection, hooks toggle, skills skip, and the daemon install/start
confirmations. All wizard output is mirrored live.

Exits 0 once the script completes and the wizard finishes, reporting the
wizard's own exit status. Exits 1 if any prompt times out or the wizard
terminates before the script is done.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		shell, _ := cmd.Flags().GetString("shell")
		stepTimeout, _ := cmd.Flags().GetDuration("step-timeout")
		drainTimeout, _ := cmd.Flags().GetDuration("drain-timeout")

		os.Exit(runOnboard(args[0], shell, stepTimeout, drainTimeout))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("shell", "", "shell used to run the command (default: $STEPWISE_SHELL, /bin/bash)")
	runCmd.Flags().Duration("step-timeout", 2*time.Minute, "time budget for each prompt to appear")
	runCmd.Flags().Duration("drain-timeout", 2*time.Minute, "time budget for the wizard to finish after the last response")
}

func runOnboard(command, shell string, stepTimeout, drainTimeout time.Duration) int {
	reporter := newConsoleReporter(os.Stdout)

	fmt.Printf("Running: %s\n", command)
	fmt.Println(strings.Repeat("=", 60))

	sess, err := stepwise.Start(command,
		stepwise.WithShell(shell),
		stepwise.WithTimeout(stepTimeout),
		stepwise.WithDrainTimeout(drainTimeout),
		stepwise.WithReporter(reporter),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stepwise: %v\n", err)
		return 1
	}
	defer sess.Close()

	script := stepwise.Onboard()
	code, err := stepwise.RunScript(sess, script)
	if err != nil {
		var stepErr *stepwise.StepError
		if errors.As(err, &stepErr) && stepErr.Index == len(script) {
			// Drain-phase failure: every prompt was answered but the wizard
			// never finished.
			reporter.drainFailure(stepErr)
		} else {
			reporter.failure(err)
		}
		return 1
	}

	reporter.done(code)
	return 0
}
