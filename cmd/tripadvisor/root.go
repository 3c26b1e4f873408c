package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripadvisor",
	Short: "Trip Advisor plans trips with a fixed sequence of AI agents",
	Long: `Trip Advisor turns a destination, duration, budget, and preferences into
a labeled trip plan by running a fixed sequence of language-model agents:
planner, budget, local guide, optional research, and a final synthesis.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
