package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexshd/dinebench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newViper binds the command's flags and DINEBENCH_* environment variables.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("dinebench")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return v, nil
}

// resolveConfig layers defaults, the --config file, flags/env and finally
// the positional arguments, then validates the result.
func resolveConfig(v *viper.Viper, args []string) (dinebench.Config, error) {
	cfg := dinebench.DefaultConfig()

	if path := v.GetString("config"); path != "" {
		loaded, err := dinebench.LoadConfig(path)
		if err != nil {
			return dinebench.Config{}, err
		}
		cfg = loaded
	}

	if err := overlayFlags(v, &cfg); err != nil {
		return dinebench.Config{}, err
	}

	if len(args) == 7 {
		if err := parsePositional(args, &cfg); err != nil {
			return dinebench.Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return dinebench.Config{}, err
	}
	return cfg, nil
}

func overlayFlags(v *viper.Viper, cfg *dinebench.Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"agents", &cfg.Agents},
		{"think-min", &cfg.Think.Min},
		{"think-max", &cfg.Think.Max},
		{"dine-min", &cfg.Dine.Min},
		{"dine-max", &cfg.Dine.Max},
		{"cycles", &cfg.Cycles},
	}
	for _, f := range ints {
		if v.IsSet(f.key) {
			*f.dst = v.GetInt(f.key)
		}
	}

	if v.IsSet("distribution") {
		d, err := dinebench.ParseDistribution(v.GetString("distribution"))
		if err != nil {
			return err
		}
		cfg.Distribution = d
	}
	if v.IsSet("backoff") {
		cfg.Backoff = v.GetDuration("backoff")
	}
	if v.IsSet("seed") {
		cfg.Seed = v.GetUint64("seed")
	}
	return nil
}

// parsePositional reads
// <agents> <min-think> <max-think> <min-dine> <max-dine> <distribution> <cycles>.
func parsePositional(args []string, cfg *dinebench.Config) error {
	names := []string{"agents", "min-think", "max-think", "min-dine", "max-dine", "", "cycles"}
	dsts := []*int{&cfg.Agents, &cfg.Think.Min, &cfg.Think.Max, &cfg.Dine.Min, &cfg.Dine.Max, nil, &cfg.Cycles}

	for i, arg := range args {
		if dsts[i] == nil {
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not an integer", dinebench.ErrInvalidConfig, names[i], arg)
		}
		*dsts[i] = n
	}

	d, err := dinebench.ParseDistribution(args[5])
	if err != nil {
		return err
	}
	cfg.Distribution = d
	return nil
}
