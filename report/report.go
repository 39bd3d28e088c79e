// Package report defines the structured per-run output format for a
// reachability/deadlock analysis and its JSON persistence, following
// the same Metadata+Model+Results shape and os.ReadFile/WriteFile I/O
// the teacher's results package uses for simulation output.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

const SchemaVersion = "1.0.0"

// Report is the complete record of one analysis run against one net.
type Report struct {
	Version  string   `json:"version"`
	RunID    string   `json:"runId"`
	Metadata Metadata `json:"metadata"`
	Model    Model    `json:"model"`
	Symbolic Symbolic `json:"symbolic"`
	Deadlock Deadlock `json:"deadlock"`
}

// Metadata records when and how long the run took.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	ComputeTime float64   `json:"computeTime"`
	Status      string    `json:"status"` // ok, error
	Error       string    `json:"error,omitempty"`
}

// Model summarizes the net analyzed, mirroring Model in the teacher's
// results package.
type Model struct {
	Name        string   `json:"name,omitempty"`
	Places      []string `json:"places"`
	Transitions []string `json:"transitions"`
	Arcs        int      `json:"arcs"`
}

// Symbolic is SymbolicReachability's output contract (spec.md §6).
type Symbolic struct {
	Count          string  `json:"count"` // decimal string: may exceed int64
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	Iterations     int     `json:"iterations"`
	InitialFormula string  `json:"initialFormula"`
	FinalFormula   string  `json:"finalFormula"`
	ExplicitCount  *int    `json:"explicitCount,omitempty"` // cross-check, when available
}

// Deadlock is DeadlockDetector's output contract (spec.md §6).
type Deadlock struct {
	Marking        map[string]int `json:"marking,omitempty"`
	Status         string         `json:"status"`
	ElapsedSeconds float64        `json:"elapsedSeconds"`
	Attempts       int            `json:"attempts"`
}

// New stamps a fresh RunID and timestamp for a successful run.
func New(model Model, sym Symbolic, dl Deadlock, computeTime float64) *Report {
	return &Report{
		Version: SchemaVersion,
		RunID:   uuid.New().String(),
		Metadata: Metadata{
			Timestamp:   time.Now(),
			ComputeTime: computeTime,
			Status:      "ok",
		},
		Model:    model,
		Symbolic: sym,
		Deadlock: dl,
	}
}

// NewError stamps a RunID for a run that failed before producing a
// Symbolic/Deadlock result.
func NewError(model Model, err error, computeTime float64) *Report {
	return &Report{
		Version: SchemaVersion,
		RunID:   uuid.New().String(),
		Metadata: Metadata{
			Timestamp:   time.Now(),
			ComputeTime: computeTime,
			Status:      "error",
			Error:       err.Error(),
		},
		Model: model,
	}
}

// WriteJSON writes r to filename as indented JSON.
func WriteJSON(r *Report, filename string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ToJSON renders r as an indented JSON string.
func ToJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// ReadJSON reads a Report previously written by WriteJSON.
func ReadJSON(filename string) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}
