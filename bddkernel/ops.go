package bddkernel

// And returns the conjunction of f and g.
func (k *Kernel) And(f, g BDD) BDD { return k.apply(opAnd, f, g) }

// Or returns the disjunction of f and g.
func (k *Kernel) Or(f, g BDD) BDD { return k.apply(opOr, f, g) }

// Not returns the negation of f.
func (k *Kernel) Not(f BDD) BDD {
	if f == falseRef {
		return trueRef
	}
	if f == trueRef {
		return falseRef
	}
	if cached, ok := k.notCache[f]; ok {
		return cached
	}
	n := k.nodes[f]
	result := k.mk(n.level, k.Not(n.low), k.Not(n.high))
	k.notCache[f] = result
	return result
}

// apply implements the classic memoized Apply algorithm shared by And/Or:
// recurse on the top variable of whichever operand has it, combine the
// two cofactors, and hash-cons the result.
func (k *Kernel) apply(op opKind, f, g BDD) BDD {
	switch op {
	case opAnd:
		if f == falseRef || g == falseRef {
			return falseRef
		}
		if f == trueRef {
			return g
		}
		if g == trueRef || f == g {
			return f
		}
	case opOr:
		if f == trueRef || g == trueRef {
			return trueRef
		}
		if f == falseRef {
			return g
		}
		if g == falseRef || f == g {
			return f
		}
	}

	key := applyKey{op: op, f: f, g: g}
	if cached, ok := k.applyCache[key]; ok {
		return cached
	}

	lf, lg := k.level(f), k.level(g)
	level := lf
	if lg < level {
		level = lg
	}

	var fLow, fHigh, gLow, gHigh BDD
	if lf == level {
		fLow, fHigh = k.low(f), k.high(f)
	} else {
		fLow, fHigh = f, f
	}
	if lg == level {
		gLow, gHigh = k.low(g), k.high(g)
	} else {
		gLow, gHigh = g, g
	}

	low := k.apply(op, fLow, gLow)
	high := k.apply(op, fHigh, gHigh)
	result := k.mk(level, low, high)
	k.applyCache[key] = result
	return result
}

// Exists existentially quantifies the variables in vars out of f (also
// called smoothing): Exists(f, {p}) = f|p=0 OR f|p=1.
func (k *Kernel) Exists(f BDD, vars []Var) BDD {
	if len(vars) == 0 {
		return f
	}
	quant := make(map[Var]bool, len(vars))
	for _, v := range vars {
		quant[v] = true
	}
	setKey := quantSetKey(vars)

	var rec func(BDD) BDD
	rec = func(f BDD) BDD {
		if f == falseRef || f == trueRef {
			return f
		}
		key := existsKey{f: f, set: setKey}
		if cached, ok := k.existsCache[key]; ok {
			return cached
		}
		n := k.nodes[f]
		low := rec(n.low)
		high := rec(n.high)
		var result BDD
		if quant[Var(n.level)] {
			result = k.Or(low, high)
		} else {
			result = k.mk(n.level, low, high)
		}
		k.existsCache[key] = result
		return result
	}
	return rec(f)
}

// quantSetKey produces a stable cache key for a set of variables so the
// Exists memo table can be shared across calls that quantify the same set.
func quantSetKey(vars []Var) string {
	seen := make(map[Var]bool, len(vars))
	max := Var(-1)
	for _, v := range vars {
		seen[v] = true
		if v > max {
			max = v
		}
	}
	buf := make([]byte, max+1)
	for v := Var(0); v <= max; v++ {
		if seen[v] {
			buf[v] = '1'
		} else {
			buf[v] = '0'
		}
	}
	return string(buf)
}

// Compose simultaneously substitutes, for every variable v present in
// sigma, the BDD sigma[v] in place of v inside f. This is the operation
// SymbolicReachability uses to rename next-state variables back to
// current-state variables after an image computation — it must never be
// approximated by enumerating satisfying assignments and rebuilding a
// disjunction, which defeats the purpose of working symbolically.
func (k *Kernel) Compose(f BDD, sigma map[Var]BDD) BDD {
	cache := make(map[BDD]BDD)
	var rec func(BDD) BDD
	rec = func(f BDD) BDD {
		if f == falseRef || f == trueRef {
			return f
		}
		if cached, ok := cache[f]; ok {
			return cached
		}
		n := k.nodes[f]
		low := rec(n.low)
		high := rec(n.high)
		var result BDD
		if replacement, ok := sigma[Var(n.level)]; ok {
			result = k.ite(replacement, high, low)
		} else {
			result = k.mk(n.level, low, high)
		}
		cache[f] = result
		return result
	}
	return rec(f)
}

// ite is the if-then-else combinator used by Compose to splice an
// arbitrary replacement BDD in for a variable.
func (k *Kernel) ite(cond, then, els BDD) BDD {
	return k.Or(k.And(cond, then), k.And(k.Not(cond), els))
}

// Equivalent tests structural equivalence. Because the node table is
// hash-consed, two BDDs compute the same function iff they are the same
// handle — this is a constant-time comparison on canonical forms.
func (k *Kernel) Equivalent(f, g BDD) bool { return f == g }
