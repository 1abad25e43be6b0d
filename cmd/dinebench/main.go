// Command dinebench runs the dining-agents contention simulation.
//
//	dinebench <agents> <min-think> <max-think> <min-dine> <max-dine> <uniform|exponential> <cycles>
//
// With no positional arguments the configuration comes from --config,
// flags and DINEBENCH_* environment variables, in rising precedence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dinebench:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dinebench <agents> <min-think> <max-think> <min-dine> <max-dine> <distribution> <cycles>",
		Short: "Simulate agents contending for a ring of shared resources",
		Long: `dinebench seats N agents around a ring of N resources. Each agent thinks,
acquires the two resources beside it, dines, and releases them, for a fixed
number of cycles. It then times one more acquisition and the run reports the
mean and standard deviation of those hunger waits.

Durations are whole milliseconds drawn from a uniform or exponential
distribution truncated to [min, max].

Examples:
  dinebench 5 10 50 10 50 uniform 3
  dinebench 5 10 50 10 50 exponential 3 --report yaml
  dinebench --config table.yaml --events log`,
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSimulation,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.Int("agents", 0, "Number of agents (1-27)")
	pf.Int("think-min", 0, "Minimum think time in ms")
	pf.Int("think-max", 0, "Maximum think time in ms")
	pf.Int("dine-min", 0, "Minimum dine time in ms")
	pf.Int("dine-max", 0, "Maximum dine time in ms")
	pf.String("distribution", "", "Duration distribution: uniform or exponential")
	pf.Int("cycles", 0, "Dine cycles per agent")
	pf.Duration("backoff", 0, "Pause after putting resources down")
	pf.Uint64("seed", 0, "Random seed (0 picks one)")
	pf.String("events", "text", "Event output: text, log or none")
	pf.String("report", "text", "Report format: text, yaml or json")
	pf.String("log-level", "info", "Diagnostic log level: debug, info, warn or error")
	pf.Bool("no-color", false, "Disable colored log output")

	rootCmd.AddCommand(
		newSweepCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dinebench version %s\n", version)
		},
	}
}

func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 7 {
		return fmt.Errorf("expected 7 positional arguments or none, got %d\nusage: %s", len(args), cmd.Use)
	}
	return nil
}
