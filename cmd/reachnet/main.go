package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "analyze":
		if err := analyze(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "batch":
		if err := batch(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("reachnet version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`reachnet - symbolic reachability and deadlock analysis for 1-safe Petri nets

Usage:
  reachnet <command> [arguments]

Commands:
  analyze   Run reachability + deadlock analysis on one net (.pnml or .json), print/save a report
  batch     Run analyze over every .pnml/.json file in a directory
  version   Print version
  help      Show this message

Run 'reachnet <command> -h' for command-specific options.`)
}
