package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/opflow/reachnet/deadlock"
	"github.com/opflow/reachnet/parser"
	"github.com/opflow/reachnet/petri"
)

// batch re-implements the original driver's scan-a-directory-of-.pnml-
// files-and-report loop: every net under a directory is parsed and
// analyzed in sorted filename order, one report printed per net.
func batch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	maxAttempts := fs.Int("max-attempts", deadlock.DefaultOptions().MaxAttempts, "CEGAR loop attempt budget for deadlock detection")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: reachnet batch <directory> [options]

Run analyze over every .pnml or .json net file in a directory, sorted by name.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("directory required")
	}

	dir := fs.Arg(0)
	// Options may also follow the directory, as in the usage line.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".pnml", ".json":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		fmt.Printf("no .pnml or .json files found in %s\n", dir)
		return nil
	}

	for _, name := range files {
		path := filepath.Join(dir, name)
		fmt.Printf("\n=== %s ===\n", name)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("FAILED: read file: %v\n", err)
			continue
		}
		var net *petri.PetriNet
		if filepath.Ext(name) == ".json" {
			net, err = parser.FromJSON(data)
		} else {
			net, err = parser.FromPNML(data)
		}
		if err != nil {
			fmt.Printf("FAILED: parse net: %v\n", err)
			continue
		}

		rep, err := runAnalysis(net, deadlock.Options{MaxAttempts: *maxAttempts})
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		printReport(rep)
	}
	return nil
}
