// Command starmapctl is the operator tool of the fulfillment service: it
// signs and replays webhook payloads and manages order claims.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "starmapctl",
		Short:         "Operate the star map fulfillment service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(locksCmd())
	rootCmd.AddCommand(ordersCmd())

	return rootCmd
}
