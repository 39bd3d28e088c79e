package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opflow/reachnet/cache"
	"github.com/opflow/reachnet/deadlock"
	"github.com/opflow/reachnet/parser"
	"github.com/opflow/reachnet/petri"
	"github.com/opflow/reachnet/reachability"
	"github.com/opflow/reachnet/report"
	"github.com/opflow/reachnet/symbolic"
	"github.com/opflow/reachnet/validation"
)

func analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	save := fs.String("save", "", "Save the JSON report to this file")
	cacheDB := fs.String("cache", "", "Sqlite cache database to read/write (content-addressed by net structure)")
	maxAttempts := fs.Int("max-attempts", deadlock.DefaultOptions().MaxAttempts, "CEGAR loop attempt budget for deadlock detection")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: reachnet analyze <net.pnml|net.json> [options]

Run symbolic reachability and deadlock detection on a net, cross-checked
against an explicit-state BFS oracle.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  reachnet analyze dining.pnml
  reachnet analyze dining.pnml --save dining.report.json
  reachnet analyze dining.pnml --cache runs.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("net file required")
	}

	netPath := fs.Arg(0)
	// Options may also follow the net file, as in the usage examples.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	data, err := os.ReadFile(netPath)
	if err != nil {
		return fmt.Errorf("read net file: %w", err)
	}
	var net *petri.PetriNet
	if filepath.Ext(netPath) == ".json" {
		net, err = parser.FromJSON(data)
	} else {
		net, err = parser.FromPNML(data)
	}
	if err != nil {
		return fmt.Errorf("parse net: %w", err)
	}

	var store *cache.Store
	var netHash string
	if *cacheDB != "" {
		store, err = cache.Open(*cacheDB)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer store.Close()
		netHash = cache.NetHash(net)
		if cached, ok, err := store.Get(netHash); err != nil {
			return fmt.Errorf("query cache: %w", err)
		} else if ok {
			fmt.Println(cached)
			return nil
		}
	}

	rep, err := runAnalysis(net, deadlock.Options{MaxAttempts: *maxAttempts})
	if err != nil {
		return err
	}

	printReport(rep)

	if *save != "" {
		if err := report.WriteJSON(rep, *save); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}
	if store != nil {
		data, err := report.ToJSON(rep)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := store.Put(netHash, rep.RunID, data); err != nil {
			return fmt.Errorf("write cache entry: %w", err)
		}
	}
	return nil
}

// runAnalysis validates the net against the 1-safety assumption the core
// requires, builds the symbolic reachable set, cross-checks its count
// against an explicit-state BFS, and runs deadlock detection. Ill-formed
// input is rejected here, before the BDD/ILP core ever sees it — per
// spec, rejecting such input is the caller's responsibility, not the
// core's.
func runAnalysis(net *petri.PetriNet, opts deadlock.Options) (*report.Report, error) {
	start := time.Now()

	model := report.Model{
		Places:      keys(net.Places),
		Transitions: keysT(net.Transitions),
		Arcs:        len(net.Arcs),
	}

	if vr := validation.NewValidator(net).Validate(); !vr.Valid {
		var msgs []string
		for _, e := range vr.Errors {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", e.Category, e.Message))
		}
		err := fmt.Errorf("net rejected by validation: %s", strings.Join(msgs, "; "))
		return report.NewError(model, err, time.Since(start).Seconds()), nil
	}

	r := symbolic.New(net)
	symResult, err := r.Compute()
	if err != nil {
		return report.NewError(model, err, time.Since(start).Seconds()), nil
	}

	explicit := reachability.NewAnalyzer(net).Analyze()
	explicitCount := explicit.StateCount

	dlResult := deadlock.Detect(net, r, opts)

	rep := report.New(
		model,
		report.Symbolic{
			Count:          symResult.Count.String(),
			ElapsedSeconds: symResult.ElapsedSeconds,
			Iterations:     symResult.Iterations,
			InitialFormula: symResult.InitialFormula,
			FinalFormula:   symResult.FinalFormula,
			ExplicitCount:  &explicitCount,
		},
		report.Deadlock{
			Marking:        dlResult.Marking,
			Status:         dlResult.Status,
			ElapsedSeconds: dlResult.ElapsedSeconds,
			Attempts:       dlResult.Attempts,
		},
		time.Since(start).Seconds(),
	)
	return rep, nil
}

func printReport(rep *report.Report) {
	fmt.Printf("Run: %s\n", rep.RunID)
	fmt.Printf("Net: %d places, %d transitions, %d arcs\n", len(rep.Model.Places), len(rep.Model.Transitions), rep.Model.Arcs)
	if rep.Metadata.Status != "ok" {
		fmt.Printf("FAILED: %s\n", rep.Metadata.Error)
		return
	}
	fmt.Printf("Reachable markings: %s (%d iterations, %.4fs)\n", rep.Symbolic.Count, rep.Symbolic.Iterations, rep.Symbolic.ElapsedSeconds)
	if rep.Symbolic.ExplicitCount != nil {
		match := "MATCH"
		if fmt.Sprint(*rep.Symbolic.ExplicitCount) != rep.Symbolic.Count {
			match = "MISMATCH"
		}
		fmt.Printf("Explicit BFS cross-check: %d (%s)\n", *rep.Symbolic.ExplicitCount, match)
	}
	fmt.Printf("Deadlock: %s (%.4fs, %d attempts)\n", rep.Deadlock.Status, rep.Deadlock.ElapsedSeconds, rep.Deadlock.Attempts)
	if rep.Deadlock.Marking != nil {
		fmt.Printf("  Marking: %v\n", rep.Deadlock.Marking)
	}
}

func keys(m map[string]*petri.Place) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysT(m map[string]*petri.Transition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
