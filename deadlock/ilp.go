package deadlock

import "sort"

// constraint represents sum_p coeffs[p]*m_p <= bound over the 0/1
// variables m_p. Every constraint the detector builds — the per-
// transition guard and the no-good cuts added by the CEGAR loop — fits
// this single linear form.
type constraint struct {
	coeffs map[string]int
	bound  int
}

// model is a 0/1 feasibility problem: find any assignment satisfying
// every constraint. There is no objective — any feasible point answers
// the question "does a structurally dead marking exist". No ILP/LP
// solver exists anywhere in the example corpus for this domain, so
// feasibility is decided by a backtracking search with bound-based
// pruning, not a simplex/branch-and-bound library.
type model struct {
	places []string
	cons   []constraint
}

func newModel(places []string) *model {
	ps := append([]string(nil), places...)
	sort.Strings(ps)
	return &model{places: ps}
}

func (m *model) addConstraint(c constraint) { m.cons = append(m.cons, c) }

// addNoGoodCut forbids exactly the assignment candidate, per the
// transformation sum_{p:cand=1} m_p - sum_{p:cand=0} m_p <= |ones| - 1
// of "sum_{p:cand=0} m_p + sum_{p:cand=1}(1-m_p) >= 1".
func (m *model) addNoGoodCut(candidate map[string]int) {
	coeffs := make(map[string]int, len(candidate))
	ones := 0
	for p, v := range candidate {
		if v == 1 {
			coeffs[p] = 1
			ones++
		} else {
			coeffs[p] = -1
		}
	}
	m.addConstraint(constraint{coeffs: coeffs, bound: ones - 1})
}

// solve runs a backtracking feasibility search over the variables in
// sorted place order, pruning a branch as soon as some constraint's
// minimum achievable sum over any completion already exceeds its bound.
// Returns the first feasible assignment found.
func (m *model) solve() (assignment map[string]int, ok bool) {
	assign := make(map[string]int, len(m.places))
	if m.search(0, assign) {
		out := make(map[string]int, len(assign))
		for k, v := range assign {
			out[k] = v
		}
		return out, true
	}
	return nil, false
}

func (m *model) search(idx int, assign map[string]int) bool {
	if idx == len(m.places) {
		return true
	}
	p := m.places[idx]
	for _, v := range [...]int{0, 1} {
		assign[p] = v
		if m.feasiblePrefix(assign) && m.search(idx+1, assign) {
			return true
		}
	}
	delete(assign, p)
	return false
}

// feasiblePrefix reports whether every constraint can still possibly be
// satisfied given the variables fixed so far: for each constraint, the
// minimum sum obtainable by optimally completing the unassigned
// variables (coeff<0 vars set to 1, coeff>0 vars left at 0) must not
// already exceed the bound.
func (m *model) feasiblePrefix(assign map[string]int) bool {
	for _, c := range m.cons {
		min := 0
		for p, coeff := range c.coeffs {
			if v, ok := assign[p]; ok {
				min += coeff * v
			} else if coeff < 0 {
				min += coeff
			}
		}
		if min > c.bound {
			return false
		}
	}
	return true
}
