// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Summary is the on-disk report of one conversion run. The operator can
// keep it next to the generated config to see which cache lines were
// dropped and why.
type Summary struct {
	Input     string         `yaml:"input"`
	Output    string         `yaml:"output"`
	Lines     int            `yaml:"lines"`
	Converted int            `yaml:"converted"`
	Skipped   int            `yaml:"skipped"`
	Errors    []SummaryError `yaml:"errors,omitempty"`
	Timestamp time.Time      `yaml:"timestamp"`
}

// SummaryError describes one skipped line.
type SummaryError struct {
	Line    int    `yaml:"line"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// NewSummary builds the report for res.
func NewSummary(input, output string, res *Result) Summary {
	s := Summary{
		Input:     input,
		Output:    output,
		Lines:     res.Lines,
		Converted: res.Converted(),
		Skipped:   res.ErrorCount(),
		Timestamp: time.Now().UTC(),
	}
	for _, e := range res.Errors {
		s.Errors = append(s.Errors, SummaryError{
			Line:    e.Line,
			Kind:    e.Kind(),
			Message: e.Err.Error(),
		})
	}
	return s
}

// WriteSummary saves s to a YAML file at path.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}
