// Package cache provides a content-addressed, sqlite-backed memoization
// store for analysis runs: the key is a deterministic hash of a net's
// structure, so re-analyzing the same net (e.g. across a batch re-run)
// skips straight to the stored report. Schema and connection handling
// follow the teacher's examples/catacombs/storage package — a single
// *sql.DB, a migrate() step run once at open, and plain Exec/QueryRow
// calls — adapted to the pure-Go modernc.org/sqlite driver so the cache
// carries no cgo dependency.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opflow/reachnet/petri"
)

// Store persists report JSON blobs keyed by net hash.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite-backed cache at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		net_hash   TEXT PRIMARY KEY,
		run_id     TEXT NOT NULL,
		report     TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// NetHash deterministically hashes a net's structure — sorted place
// names with their initial markings, sorted transition names, and
// sorted (source,target) arc pairs — so two structurally identical nets
// hash identically regardless of map iteration order.
func NetHash(net *petri.PetriNet) string {
	places := make([]string, 0, len(net.Places))
	for p := range net.Places {
		places = append(places, p)
	}
	sort.Strings(places)

	transitions := make([]string, 0, len(net.Transitions))
	for t := range net.Transitions {
		transitions = append(transitions, t)
	}
	sort.Strings(transitions)

	type arcKey struct{ source, target string }
	arcs := make([]arcKey, 0, len(net.Arcs))
	for _, a := range net.Arcs {
		arcs = append(arcs, arcKey{a.Source, a.Target})
	}
	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].source != arcs[j].source {
			return arcs[i].source < arcs[j].source
		}
		return arcs[i].target < arcs[j].target
	})

	h := sha256.New()
	for _, p := range places {
		fmt.Fprintf(h, "P:%s=%g;", p, net.Places[p].GetTokenCount())
	}
	for _, t := range transitions {
		fmt.Fprintf(h, "T:%s;", t)
	}
	for _, a := range arcs {
		fmt.Fprintf(h, "A:%s>%s;", a.source, a.target)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the stored report JSON for a net hash, or ok=false if
// nothing is cached for it.
func (s *Store) Get(netHash string) (reportJSON string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT report FROM runs WHERE net_hash = ?`, netHash)
	var report string
	switch err := row.Scan(&report); err {
	case nil:
		return report, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("query cache: %w", err)
	}
}

// Put stores (or replaces) the report JSON for a net hash under the
// given run ID.
func (s *Store) Put(netHash, runID, reportJSON string) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (net_hash, run_id, report, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(net_hash) DO UPDATE SET run_id = excluded.run_id, report = excluded.report, created_at = excluded.created_at`,
		netHash, runID, reportJSON, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}
