package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/alexshd/dinebench"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type sweepResult struct {
	Points []dinebench.SweepPoint    `yaml:"points" json:"points"`
	Model  *dinebench.ContentionModel `yaml:"model,omitempty" json:"model,omitempty"`
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the simulation across several table sizes and fit a contention model",
		Long: `Run the configured simulation once per agent count and report meal
throughput and hunger statistics for each. With three or more counts the
Universal Scalability Law is fitted to the throughput curve.

Examples:
  dinebench sweep --levels 2,3,5,8,13
  dinebench sweep --levels 2,4,8 --think-min 1 --think-max 5 --report yaml`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	cmd.Flags().IntSlice("levels", []int{2, 3, 5, 8}, "Agent counts to run")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(v, nil)
	if err != nil {
		return err
	}
	format, err := checkReportFormat(v)
	if err != nil {
		return err
	}
	levels, err := cmd.Flags().GetIntSlice("levels")
	if err != nil {
		return err
	}
	level, err := parseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level, v.GetBool("no-color"))

	logger.Info("sweeping", "levels", levels, "cycles", cfg.Cycles)
	points, err := dinebench.Sweep(cfg, levels, dinebench.WithLogger(logger))
	if err != nil {
		return err
	}

	result := sweepResult{Points: points}
	if len(points) >= 3 {
		model, err := dinebench.FitContention(points)
		if err != nil {
			logger.Warn("contention model not fitted", "err", err)
		} else {
			result.Model = &model
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENTS\tMEALS/SEC\tMEAN HUNGER\tSTDDEV")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f ms\t%.2f ms\n", p.Agents, p.Throughput, p.Stats.Mean, p.Stats.Stddev)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if m := result.Model; m != nil {
		fmt.Fprintf(out, "\nλ=%.3f meals/sec  α=%.4f  β=%.4f  R²=%.3f\n", m.Lambda, m.Alpha, m.Beta, m.RSquared)
	}
	return nil
}
