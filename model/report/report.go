// Package report defines the result of a simulation run and its textual
// artifact format.
package report

import (
	"fmt"
	"time"
)

// ProcessSummary describes a finished process
type ProcessSummary struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Registers    string `json:"registers" yaml:"registers"`
	Dispatches   int    `json:"dispatches" yaml:"dispatches"`
	Instructions int    `json:"instructions" yaml:"instructions"`
}

// Report represents run statistics and the full event log
type Report struct {
	RunID                  string            `json:"runId,omitempty" yaml:"runId,omitempty"`
	Quantum                int               `json:"quantum" yaml:"quantum"`
	Locale                 string            `json:"locale,omitempty" yaml:"locale,omitempty"`
	ContextSwitches        int               `json:"contextSwitches" yaml:"contextSwitches"`
	Instructions           int               `json:"instructions" yaml:"instructions"`
	Finished               int               `json:"finished" yaml:"finished"`
	AverageContextSwitches float64           `json:"averageContextSwitches" yaml:"averageContextSwitches"`
	AverageInstructions    float64           `json:"averageInstructions" yaml:"averageInstructions"`
	Log                    []string          `json:"log" yaml:"log"`
	Processes              []*ProcessSummary `json:"processes,omitempty" yaml:"processes,omitempty"`
	CreatedAt              time.Time         `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// New creates a report and computes its averages
func New(quantum, contextSwitches, instructions, finished int) *Report {
	ret := &Report{
		Quantum:         quantum,
		ContextSwitches: contextSwitches,
		Instructions:    instructions,
		Finished:        finished,
	}
	ret.computeAverages()
	return ret
}

// computeAverages falls back to 0 when there is nothing to divide by.
func (r *Report) computeAverages() {
	r.AverageContextSwitches = 0
	if r.Finished > 0 {
		r.AverageContextSwitches = float64(r.ContextSwitches) / float64(r.Finished)
	}
	r.AverageInstructions = 0
	if r.ContextSwitches > 0 {
		r.AverageInstructions = float64(r.Instructions) / float64(r.ContextSwitches)
	}
}

// FileName returns the report artifact name for quantum, e.g. log05.txt
func FileName(quantum int) string {
	return fmt.Sprintf("log%02d.txt", quantum)
}

// FileName returns the artifact name of this report
func (r *Report) FileName() string {
	return FileName(r.Quantum)
}
