package bddkernel

import (
	"iter"
	"math/big"
)

// Assignment is a total map from every declared variable to a Boolean
// value, as produced by SatAll.
type Assignment map[Var]bool

// SatCount returns the number of satisfying assignments of f over the
// full set of variables declared in the kernel (not just the ones f
// actually depends on), as an arbitrary-precision integer.
func (k *Kernel) SatCount(f BDD) *big.Int {
	if f == falseRef {
		return big.NewInt(0)
	}
	memo := make(map[BDD]*big.Int)
	var countAt func(BDD) *big.Int
	countAt = func(n BDD) *big.Int {
		if n == trueRef {
			return big.NewInt(1)
		}
		if n == falseRef {
			return big.NewInt(0)
		}
		if cached, ok := memo[n]; ok {
			return cached
		}
		nd := k.nodes[n]
		lowCount := scaleBySkip(countAt(nd.low), k.level(nd.low)-nd.level-1)
		highCount := scaleBySkip(countAt(nd.high), k.level(nd.high)-nd.level-1)
		total := new(big.Int).Add(lowCount, highCount)
		memo[n] = total
		return total
	}
	return scaleBySkip(countAt(f), k.level(f))
}

// scaleBySkip multiplies n by 2^skip, treating negative skip as zero
// (the terminal case where a node's own level already accounts for it).
func scaleBySkip(n *big.Int, skip int32) *big.Int {
	if skip <= 0 {
		return n
	}
	return new(big.Int).Lsh(n, uint(skip))
}

// SatAll lazily enumerates every satisfying assignment of f as a total
// map over all declared variables. Assignments are generated on demand;
// callers that only need the first few, or want to stop early, never pay
// for the rest.
func (k *Kernel) SatAll(f BDD) iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		partial := make(Assignment, len(k.names))
		k.satAllRec(f, 0, partial, yield)
	}
}

// satAllRec walks the declared variable order from pos to the end,
// following f's actual branches where f depends on the current variable
// and branching over both values where it is a "don't care" (f's next
// real decision is at a deeper level). Returns false once yield asks to
// stop, so the caller can unwind without visiting the rest of the tree.
func (k *Kernel) satAllRec(f BDD, pos int32, partial Assignment, yield func(Assignment) bool) bool {
	if f == falseRef {
		return true
	}
	if pos == int32(len(k.names)) {
		out := make(Assignment, len(partial))
		for v, b := range partial {
			out[v] = b
		}
		return yield(out)
	}
	v := Var(pos)
	if f == trueRef || k.level(f) != pos {
		// Don't-care variable: both values lead to the same subfunction.
		partial[v] = false
		if !k.satAllRec(f, pos+1, partial, yield) {
			return false
		}
		partial[v] = true
		if !k.satAllRec(f, pos+1, partial, yield) {
			return false
		}
		delete(partial, v)
		return true
	}
	n := k.nodes[f]
	partial[v] = false
	if !k.satAllRec(n.low, pos+1, partial, yield) {
		return false
	}
	partial[v] = true
	if !k.satAllRec(n.high, pos+1, partial, yield) {
		return false
	}
	delete(partial, v)
	return true
}
