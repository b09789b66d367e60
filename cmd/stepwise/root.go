package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Stepwise drives interactive CLI wizards through scripted keystrokes",
	Long: `Stepwise spawns an interactive command inside a pseudo-terminal and walks it
through a fixed prompt/response script, mirroring all output live. It exists
to reproduce and debug multi-step onboarding flows without manual typing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
