// Package bddkernel is a thin, side-effect-free facade over a Reduced
// Ordered Binary Decision Diagram (ROBDD) representation of Boolean
// functions. It provides Boolean variables, the logical combinators, and
// the existential-quantification / substitution / enumeration operations
// symbolic state-space analysis needs.
//
// The node table is hash-consed the way github.com/dalzilio/rudd's BuDDy
// storage layer is: nodes live in a single growable slice, indexed by
// int32-sized handles, and a unique table maps (level, low, high) triples
// back to existing handles so structurally identical functions always
// share one node. Two BDDs are then equivalent iff their handles are
// equal — no traversal required.
package bddkernel

import "fmt"

// BDD is a handle to a node in a Kernel's table. The zero value is the
// constant-false terminal (the same handle Kernel.Zero returns).
type BDD int32

// Var identifies a Boolean variable allocated by Kernel.NewVar. Variables
// are ordered by allocation order, which fixes the BDD variable ordering
// for the lifetime of the kernel.
type Var int32

const (
	falseRef BDD = 0
	trueRef  BDD = 1
)

// node is one ROBDD node: the variable at this node's level, and the
// (canonical, already-reduced) low/high children.
type node struct {
	level int32
	low   BDD
	high  BDD
}

type nodeKey struct {
	level int32
	low   BDD
	high  BDD
}

// Kernel owns a node table and the variables declared in it. All
// operations on a Kernel are pure with respect to their BDD arguments;
// the only mutation is internal node-table growth. A Kernel is not safe
// for concurrent use — the core analyzers that own one run single
// threaded, per spec.
type Kernel struct {
	nodes    []node
	unique   map[nodeKey]BDD
	names    []string
	varNodes []BDD // Var(i) -> the BDD node representing that variable alone

	applyCache   map[applyKey]BDD
	notCache     map[BDD]BDD
	existsCache  map[existsKey]BDD

	maxNodes int // 0 means unbounded
}

// NodeLimitError is panicked by mk when growing the node table would
// exceed the configured SetNodeLimit. Callers that want a normal error
// return (SymbolicReachability.Compute does) recover it at the top of
// their own call and convert it.
type NodeLimitError struct {
	Limit int
}

func (e *NodeLimitError) Error() string {
	return fmt.Sprintf("BDD node table exhausted (limit %d nodes)", e.Limit)
}

// SetNodeLimit bounds the number of nodes the kernel will allocate.
// Exceeding it panics with *NodeLimitError from mk, the kernel's single
// allocation point; 0 (the default) means unbounded.
func (k *Kernel) SetNodeLimit(n int) { k.maxNodes = n }

type opKind uint8

const (
	opAnd opKind = iota
	opOr
)

type applyKey struct {
	op   opKind
	f, g BDD
}

type existsKey struct {
	f   BDD
	set string // canonical key of the quantified variable set, see quantSetKey
}

// New creates an empty kernel. Variables are added with NewVar as they are
// discovered; there is no need to know the final variable count in advance.
func New() *Kernel {
	k := &Kernel{
		nodes:      make([]node, 2, 64),
		unique:     make(map[nodeKey]BDD, 64),
		applyCache: make(map[applyKey]BDD),
		notCache:   make(map[BDD]BDD),
		existsCache: make(map[existsKey]BDD),
	}
	// Terminals occupy slots 0 and 1. Their stored level is unused:
	// Kernel.level reports terminalLevel for them (one past the last
	// declared variable), so ordering comparisons always treat them as
	// below every real variable.
	k.nodes[falseRef] = node{level: 0, low: falseRef, high: falseRef}
	k.nodes[trueRef] = node{level: 0, low: trueRef, high: trueRef}
	return k
}

// Zero is the constant-false function.
func (k *Kernel) Zero() BDD { return falseRef }

// One is the constant-true function.
func (k *Kernel) One() BDD { return trueRef }

// NewVar allocates a fresh Boolean variable and returns both its Var
// handle and the BDD representing "this variable is true". Names are
// cosmetic (used only by String) and are not required to be unique,
// though callers should make them so for readable diagnostics.
func (k *Kernel) NewVar(name string) (Var, BDD) {
	v := Var(len(k.names))
	k.names = append(k.names, name)
	ref := k.mk(int32(v), falseRef, trueRef)
	k.varNodes = append(k.varNodes, ref)
	return v, ref
}

// NumVars returns the number of variables declared so far.
func (k *Kernel) NumVars() int { return len(k.names) }

// VarName returns the name passed to NewVar for v.
func (k *Kernel) VarName(v Var) string { return k.names[v] }

// terminalLevel is used as the ordering level of Zero/One: strictly
// greater than every real variable level, so every internal node always
// sorts above the terminals.
func (k *Kernel) terminalLevel() int32 { return int32(len(k.names)) }

func (k *Kernel) level(f BDD) int32 {
	if f == falseRef || f == trueRef {
		return k.terminalLevel()
	}
	return k.nodes[f].level
}

func (k *Kernel) low(f BDD) BDD  { return k.nodes[f].low }
func (k *Kernel) high(f BDD) BDD { return k.nodes[f].high }

// mk returns the canonical handle for the node (level, low, high),
// reducing (low == high collapses to that shared child) and hash-consing
// against the unique table so structurally equal nodes are never
// duplicated.
func (k *Kernel) mk(level int32, low, high BDD) BDD {
	if low == high {
		return low
	}
	key := nodeKey{level: level, low: low, high: high}
	if ref, ok := k.unique[key]; ok {
		return ref
	}
	if k.maxNodes > 0 && len(k.nodes) >= k.maxNodes {
		panic(&NodeLimitError{Limit: k.maxNodes})
	}
	k.nodes = append(k.nodes, node{level: level, low: low, high: high})
	ref := BDD(len(k.nodes) - 1)
	k.unique[key] = ref
	return ref
}

// String renders a BDD's defining node for debugging/diagnostics (not a
// full truth-table dump).
func (k *Kernel) String(f BDD) string {
	switch f {
	case falseRef:
		return "0"
	case trueRef:
		return "1"
	default:
		n := k.nodes[f]
		return fmt.Sprintf("ite(%s, %s, %s)", k.names[n.level], k.String(n.high), k.String(n.low))
	}
}
