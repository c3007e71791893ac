// Command phenomebench compiles a phenome topology, drives it through an
// evaluator for a number of repeats, and reports throughput and fitness the
// way an operator reads it at a terminal.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runBenchmark(ctx, args[1:])
	case "runs":
		return runList(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "activations":
		return runActivations(args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "experiments":
		return runExperiments(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: phenomebench <run|runs|show|activations|export|experiments> [flags]", msg)
}
