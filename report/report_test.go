package report

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(
		Model{Places: []string{"p1", "p2"}, Transitions: []string{"t"}, Arcs: 2},
		Symbolic{Count: "2", ElapsedSeconds: 0.001, Iterations: 1},
		Deadlock{Status: "No reachable deadlock found"},
		0.002,
	)
	if r.RunID == "" {
		t.Fatalf("expected a non-empty RunID")
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.RunID != r.RunID {
		t.Fatalf("RunID mismatch: got %s, want %s", got.RunID, r.RunID)
	}
	if got.Symbolic.Count != "2" {
		t.Fatalf("Symbolic.Count = %q, want %q", got.Symbolic.Count, "2")
	}
}

func TestNewErrorRecordsFailure(t *testing.T) {
	r := NewError(Model{Places: []string{"p1"}}, errBoom{}, 0.5)
	if r.Metadata.Status != "error" {
		t.Fatalf("status = %q, want error", r.Metadata.Status)
	}
	if r.Metadata.Error == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
