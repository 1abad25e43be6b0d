package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alexshd/dinebench"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func newLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}

// newSink picks where phase-transition events go. Events are part of the
// run's output, so they share the report's writer.
func newSink(v *viper.Viper, out io.Writer) (dinebench.EventSink, error) {
	switch mode := v.GetString("events"); mode {
	case "text":
		return dinebench.NewTextSink(out), nil
	case "log":
		return dinebench.LogSink{Logger: newLogger(out, slog.LevelInfo, v.GetBool("no-color"))}, nil
	case "none":
		return dinebench.NopSink{}, nil
	default:
		return nil, fmt.Errorf("unknown events mode %q (want text, log or none)", mode)
	}
}
