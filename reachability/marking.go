// Package reachability provides an explicit-state BFS oracle used to
// cross-check SymbolicReachability's BDD-based state count.
package reachability

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
)

// Marking represents a state of the Petri net (token distribution).
// It maps place names to token counts.
type Marking map[string]int

// Copy creates a deep copy of the marking.
func (m Marking) Copy() Marking {
	result := make(Marking, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// Hash returns a deterministic hash of the marking, independent of map
// iteration order.
func (m Marking) Hash() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	buf := make([]byte, 8)
	for _, k := range keys {
		h.Write([]byte(k))
		binary.BigEndian.PutUint64(buf, uint64(m[k]))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// Get returns the token count for a place (0 if not present).
func (m Marking) Get(place string) int {
	return m[place]
}

// Add adds tokens to a place.
func (m Marking) Add(place string, tokens int) {
	m[place] += tokens
}

// Sub subtracts tokens from a place.
func (m Marking) Sub(place string, tokens int) {
	m[place] -= tokens
}

// Max returns the maximum token count in any place.
func (m Marking) Max() int {
	max := 0
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}
