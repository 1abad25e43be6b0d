package dinebench

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the read-only outcome of a finished run.
type Report struct {
	RunID   string        `yaml:"run_id" json:"run_id"`
	Config  Config        `yaml:"config" json:"config"`
	Hunger  []float64     `yaml:"hunger_ms" json:"hunger_ms"` // Final-wait sample per agent, seat order
	Stats   Statistics    `yaml:"stats" json:"stats"`
	Tail    TailStats     `yaml:"cycle_hunger" json:"cycle_hunger"`
	Meals   int           `yaml:"meals" json:"meals"`
	Elapsed time.Duration `yaml:"elapsed" json:"elapsed"`
}

// WriteText prints the two-line hunger summary.
func (r Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Average Hungry State Duration: %.2f ms\nStandard Deviation of Hungry State: %.2f ms\n",
		r.Stats.Mean, r.Stats.Stddev)
	return err
}

// WriteYAML encodes the full report as YAML.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes the full report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
