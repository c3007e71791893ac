package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"phenome/internal/benchstore"
	"phenome/internal/evalstats"
)

// runExport reads a persisted run back out of a benchstore.Store and
// writes it to baseDir as the portable file/CSV artifacts a spreadsheet or
// another machine can consume without opening the store directly: a
// config.json, a results.csv, and a results.jsonl stream of the same
// per-repeat results. When --experiment-id is set, the run is also folded
// into that experiment's grouping record under baseDir/experiments.
func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id to export")
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phenomebench.db", "sqlite database path")
	outDir := fs.String("out-dir", "", "directory to write the exported run artifacts under")
	experimentID := fs.String("experiment-id", "", "group this run under a benchmark experiment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := strings.TrimSpace(*runID)
	if id == "" {
		return errors.New("export requires --run-id")
	}
	if strings.TrimSpace(*outDir) == "" {
		return errors.New("export requires --out-dir")
	}

	store, err := benchstore.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = benchstore.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	run, ok, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", id)
	}

	if err := evalstats.WriteRunConfig(*outDir, run.RunID, run.Config); err != nil {
		return fmt.Errorf("write run config: %w", err)
	}
	if err := evalstats.WriteRunResults(*outDir, run.RunID, run.Results); err != nil {
		return fmt.Errorf("write run results: %w", err)
	}

	jsonlItems := make([]any, len(run.Results))
	for i, r := range run.Results {
		jsonlItems[i] = r
	}
	jsonlPath := filepath.Join(*outDir, run.RunID, "results.jsonl")
	if err := evalstats.WriteJSONLines(jsonlPath, jsonlItems); err != nil {
		return fmt.Errorf("write results jsonl: %w", err)
	}

	eid := strings.TrimSpace(*experimentID)
	if eid != "" {
		if err := addRunToExperiment(*outDir, eid, run.RunID); err != nil {
			return fmt.Errorf("update experiment %s: %w", eid, err)
		}
	}

	fmt.Printf("exported run %s to %s\n", run.RunID, *outDir)
	return nil
}

// addRunToExperiment folds runID into the named experiment's grouping
// record under baseDir, creating the record on first use.
func addRunToExperiment(baseDir, experimentID, runID string) error {
	exp, ok, err := evalstats.ReadBenchmarkExperiment(baseDir, experimentID)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if !ok {
		exp = evalstats.BenchmarkExperiment{ID: experimentID, StartedAtUTC: now}
	}
	for _, existing := range exp.RunIDs {
		if existing == runID {
			return evalstats.WriteBenchmarkExperiment(baseDir, exp)
		}
	}
	exp.RunIDs = append(exp.RunIDs, runID)
	exp.CompletedAtUTC = now
	return evalstats.WriteBenchmarkExperiment(baseDir, exp)
}

// runExperiments lists the benchmark experiment grouping records written
// under baseDir by runExport.
func runExperiments(args []string) error {
	fs := flag.NewFlagSet("experiments", flag.ContinueOnError)
	baseDir := fs.String("dir", "", "directory experiments were exported under")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*baseDir) == "" {
		return errors.New("experiments requires --dir")
	}

	exps, err := evalstats.ListBenchmarkExperiments(*baseDir)
	if err != nil {
		return err
	}
	if len(exps) == 0 {
		fmt.Println("no experiments")
		return nil
	}
	for _, exp := range exps {
		fmt.Printf("experiment %s: %d run(s), started %s\n", exp.ID, len(exp.RunIDs), exp.StartedAtUTC)
	}
	return nil
}
