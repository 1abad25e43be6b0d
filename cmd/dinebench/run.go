package main

import (
	"fmt"
	"io"

	"github.com/alexshd/dinebench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}

	// Everything is resolved before the first agent exists, so a bad
	// configuration produces no event output at all.
	cfg, err := resolveConfig(v, args)
	if err != nil {
		return err
	}
	report, err := checkReportFormat(v)
	if err != nil {
		return err
	}
	level, err := parseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	sink, err := newSink(v, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), level, v.GetBool("no-color"))

	sim, err := dinebench.New(cfg, dinebench.WithSink(sink), dinebench.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("running simulation",
		"run", sim.ID(),
		"agents", cfg.Agents,
		"cycles", cfg.Cycles,
		"distribution", cfg.Distribution.String())

	result := sim.Run()
	logger.Info("simulation complete", "run", result.RunID, "elapsed", result.Elapsed, "meals", result.Meals)

	return writeReport(cmd.OutOrStdout(), report, result)
}

func checkReportFormat(v *viper.Viper) (string, error) {
	switch format := v.GetString("report"); format {
	case "text", "yaml", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, yaml or json)", format)
	}
}

func writeReport(w io.Writer, format string, r dinebench.Report) error {
	switch format {
	case "yaml":
		return r.WriteYAML(w)
	case "json":
		return r.WriteJSON(w)
	default:
		return r.WriteText(w)
	}
}
