// Package deadlock decides whether a 1-safe Petri net's reachable-state
// set contains a dead marking — one with no enabled transition — using
// a CEGAR loop: an ILP-like feasibility search proposes structurally
// dead candidates, the symbolic reachable set validates them, and
// rejected candidates are excluded by a no-good cut before the next
// attempt.
package deadlock

import (
	"fmt"
	"time"

	"github.com/opflow/reachnet/petri"
	"github.com/opflow/reachnet/symbolic"
)

// Options configures the CEGAR loop. The zero value is not ready to
// use; call DefaultOptions.
type Options struct {
	MaxAttempts int
}

// DefaultOptions returns the detector's single runtime knob at its
// documented default.
func DefaultOptions() Options {
	return Options{MaxAttempts: 50}
}

const (
	StatusFound           = "Deadlock FOUND"
	StatusNoneReachable   = "No reachable deadlock found"
	StatusAttemptsExceeded = "No deadlock found after %d attempts"
	StatusBDDFailure       = "BDD computation failed: %v"
)

// Result is the output contract for a completed detection run. Marking
// is non-nil only when Status is StatusFound.
type Result struct {
	Marking        map[string]int
	ElapsedSeconds float64
	Status         string
	Attempts       int
}

// Detect runs the validation loop against reach's already-computed
// reachable set R. reach.Compute must have been called first.
func Detect(net *petri.PetriNet, reach *symbolic.Reachability, opts Options) *Result {
	start := time.Now()

	for t := range net.Transitions {
		if len(net.GetInputArcs(t)) == 0 {
			return &Result{
				Status:         StatusNoneReachable,
				ElapsedSeconds: time.Since(start).Seconds(),
			}
		}
	}

	m := newModel(reach.Places())
	for t := range net.Transitions {
		pre := net.GetInputArcs(t)
		coeffs := make(map[string]int, len(pre))
		for _, a := range pre {
			coeffs[a.Source] = 1
		}
		m.addConstraint(constraint{coeffs: coeffs, bound: len(pre) - 1})
	}

	attempts := 0
	for attempts < opts.MaxAttempts {
		candidate, ok := m.solve()
		if !ok {
			return &Result{
				Status:         StatusNoneReachable,
				ElapsedSeconds: time.Since(start).Seconds(),
				Attempts:       attempts,
			}
		}

		reachable, bddErr := checkReachable(reach, candidate)
		if bddErr != nil {
			return &Result{
				Status:         fmt.Sprintf(StatusBDDFailure, bddErr),
				ElapsedSeconds: time.Since(start).Seconds(),
				Attempts:       attempts,
			}
		}
		if reachable {
			return &Result{
				Marking:        candidate,
				Status:         StatusFound,
				ElapsedSeconds: time.Since(start).Seconds(),
				Attempts:       attempts + 1,
			}
		}

		m.addNoGoodCut(candidate)
		attempts++
	}

	return &Result{
		Status:         fmt.Sprintf(StatusAttemptsExceeded, opts.MaxAttempts),
		ElapsedSeconds: time.Since(start).Seconds(),
		Attempts:       attempts,
	}
}

// checkReachable tests candidate against R by BDD intersection. A panic
// carrying an error during this check (such as a BDD node-table
// exhaustion, *bddkernel.NodeLimitError) does not abort the whole run:
// it is reported as "not reachable" (false, nil) so the loop proceeds to
// the next candidate. A panic whose value is not an error is re-raised.
func checkReachable(reach *symbolic.Reachability, candidate map[string]int) (reachable bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(interface{ Error() string }); ok {
				reachable = false
				return
			}
			panic(rec)
		}
	}()

	k := reach.Kernel()
	beta := k.One()
	for _, p := range reach.Places() {
		lit := reach.CurrRef(p)
		if candidate[p] == 0 {
			lit = k.Not(lit)
		}
		beta = k.And(beta, lit)
	}
	return k.SatCount(k.And(reach.R(), beta)).Sign() > 0, nil
}
