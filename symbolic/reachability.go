// Package symbolic owns the BDD encoding of Petri net markings and
// transition relations, and computes the fixed point of the set of
// markings reachable from the initial marking.
package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/opflow/reachnet/bddkernel"
	"github.com/opflow/reachnet/petri"
)

// Result is the output contract for a completed reachability computation.
type Result struct {
	Count          *big.Int // number of reachable markings
	ElapsedSeconds float64
	InitialFormula string
	FinalFormula   string
	Iterations     int
}

// Reachability builds and holds the BDD of markings reachable from a
// net's initial marking. Setup (variable allocation, transition-relation
// encoding) happens once, in New; Compute runs the symbolic BFS fixed
// point.
type Reachability struct {
	net    *petri.PetriNet
	kernel *bddkernel.Kernel

	places []string // sorted place order; fixes the variable ordering

	currVar map[string]bddkernel.Var
	nextVar map[string]bddkernel.Var
	curr    map[string]bddkernel.BDD
	next    map[string]bddkernel.BDD

	transRel bddkernel.BDD
	initial  bddkernel.BDD

	r   bddkernel.BDD
	res *Result
}

// New sets up a BDD encoding for net: one current/next variable pair per
// place (visited in sorted order, interleaved x, x', x, x', ... as §3
// recommends for image-computation locality), the encoded initial
// marking, and the transition relation T_rel = Identity ∨ ⋁ τ_t.
//
// net is assumed 1-safe, unit-weight and inhibitor-free; validating that
// assumption is the caller's job (see package validation), not this
// package's — SymbolicReachability only ever consumes nets that already
// satisfy it.
func New(net *petri.PetriNet) *Reachability {
	r := &Reachability{
		net:     net,
		kernel:  bddkernel.New(),
		currVar: make(map[string]bddkernel.Var),
		nextVar: make(map[string]bddkernel.Var),
		curr:    make(map[string]bddkernel.BDD),
		next:    make(map[string]bddkernel.BDD),
	}

	for p := range net.Places {
		r.places = append(r.places, p)
	}
	sort.Strings(r.places)

	for _, p := range r.places {
		cv, cref := r.kernel.NewVar("x_" + p)
		nv, nref := r.kernel.NewVar("x_" + p + "_next")
		r.currVar[p] = cv
		r.nextVar[p] = nv
		r.curr[p] = cref
		r.next[p] = nref
	}

	r.initial = r.encodeInitial()
	r.transRel = r.encodeTransitionRelation()
	return r
}

// Kernel returns the BDD kernel backing this analyzer, so a caller (the
// deadlock detector) can build and test its own formulas against R in
// the same variable space.
func (r *Reachability) Kernel() *bddkernel.Kernel { return r.kernel }

// CurrVar returns the current-state variable for place p.
func (r *Reachability) CurrVar(p string) bddkernel.Var { return r.currVar[p] }

// CurrRef returns the BDD "this place's current variable is true".
func (r *Reachability) CurrRef(p string) bddkernel.BDD { return r.curr[p] }

// Places returns the fixed, sorted place order the encoding uses.
func (r *Reachability) Places() []string { return r.places }

// R returns the reachable-state BDD computed by the most recent Compute
// call, or the zero BDD if Compute has not run yet.
func (r *Reachability) R() bddkernel.BDD { return r.r }

func (r *Reachability) encodeInitial() bddkernel.BDD {
	f := r.kernel.One()
	for _, p := range r.places {
		if r.net.Places[p].GetTokenCount() > 0 {
			f = r.kernel.And(f, r.curr[p])
		} else {
			f = r.kernel.And(f, r.kernel.Not(r.curr[p]))
		}
	}
	return f
}

// encodeTransitionRelation builds T_rel = Identity ∨ ⋁_{t} τ_t per §4.2:
// guard (Pre(t) all current-true), post-state (Post(t) all next-true,
// Pre(t)\Post(t) all next-false), frame (everything else unchanged).
func (r *Reachability) encodeTransitionRelation() bddkernel.BDD {
	k := r.kernel
	allPlaces := make(map[string]bool, len(r.places))
	for _, p := range r.places {
		allPlaces[p] = true
	}

	rel := k.Zero()
	for t := range r.net.Transitions {
		pre := map[string]bool{}
		for _, a := range r.net.GetInputArcs(t) {
			pre[a.Source] = true
		}
		post := map[string]bool{}
		for _, a := range r.net.GetOutputArcs(t) {
			post[a.Target] = true
		}

		tau := k.One()
		for p := range pre {
			tau = k.And(tau, r.curr[p])
		}
		for p := range post {
			tau = k.And(tau, r.next[p])
		}
		for p := range pre {
			if !post[p] {
				tau = k.And(tau, k.Not(r.next[p]))
			}
		}
		for _, p := range r.places {
			if pre[p] || post[p] {
				continue
			}
			tau = k.And(tau, r.frame(p))
		}
		rel = k.Or(rel, tau)
	}

	identity := k.One()
	for _, p := range r.places {
		identity = k.And(identity, r.frame(p))
	}
	return k.Or(rel, identity)
}

// frame returns x_p <-> x'_p, i.e. (x_p & x'_p) | (~x_p & ~x'_p).
func (r *Reachability) frame(p string) bddkernel.BDD {
	k := r.kernel
	x, xNext := r.curr[p], r.next[p]
	return k.Or(k.And(x, xNext), k.And(k.Not(x), k.Not(xNext)))
}

// Compute runs the symbolic BFS fixed point: R <- M0, then repeatedly
// R <- R ∨ rename(∃x. R ∧ T_rel) until R stops growing. The rename step
// always uses Compose (never SatAll-and-rebuild, which would defeat the
// point of computing symbolically).
//
// The only failure mode is BDD resource exhaustion (node-table growth
// past the kernel's configured limit); on that failure no partial R is
// kept and the error is returned alone.
func (r *Reachability) Compute() (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if nle, ok := rec.(*bddkernel.NodeLimitError); ok {
				result, err = nil, fmt.Errorf("symbolic reachability: %w", nle)
				return
			}
			panic(rec)
		}
	}()

	k := r.kernel
	start := time.Now()

	currVars := make([]bddkernel.Var, len(r.places))
	for i, p := range r.places {
		currVars[i] = r.currVar[p]
	}
	renameSigma := make(map[bddkernel.Var]bddkernel.BDD, len(r.places))
	for _, p := range r.places {
		renameSigma[r.nextVar[p]] = r.curr[p]
	}

	initialFormula := k.String(r.initial)

	set := r.initial
	iterations := 0
	for {
		iterations++
		image := k.Exists(k.And(set, r.transRel), currVars)
		imagePrime := k.Compose(image, renameSigma)
		next := k.Or(set, imagePrime)
		if k.Equivalent(next, set) {
			set = next
			break
		}
		set = next
	}

	// SatCount ranges over every declared variable, current and next; R
	// depends on the current variables only, so each marking in R is
	// counted once per next-state assignment (2^|P| times).
	r.r = set
	r.res = &Result{
		Count:          new(big.Int).Rsh(k.SatCount(set), uint(len(r.places))),
		ElapsedSeconds: time.Since(start).Seconds(),
		InitialFormula: initialFormula,
		FinalFormula:   k.String(set),
		Iterations:     iterations,
	}
	return r.res, nil
}
