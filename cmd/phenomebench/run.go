package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"phenome/internal/benchstore"
	"phenome/internal/evalstats"
	"phenome/pkg/phenome"
)

func runBenchmark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	evaluatorName := fs.String("evaluator", "xor", "evaluator: xor|multiplexer|single-pole|double-pole")
	engineKind := fs.String("engine", "acyclic", "engine: cyclic|acyclic|vectorized")
	topologyPath := fs.String("topology", "", "path to a JSON topology file (defaults to a built-in demo for --evaluator=xor)")
	activation := fs.String("activation", "tanh", "registered activation function name")
	activationCount := fs.Int("activation-count", 3, "cyclic engine propagation steps per activation")
	boundedOutput := fs.Bool("bounded-output", false, "clamp output reads to [-1, 1]")
	addressBits := fs.Int("address-bits", 2, "multiplexer evaluator address line count")
	mode := fs.String("mode", "", "evaluator mode: gt|validation|test|benchmark (default gt)")
	repeats := fs.Int("repeats", 10, "number of evaluator repeats to run")
	storeKind := fs.String("store", "", "persist the run to this store backend: memory|sqlite (unset skips persistence)")
	dbPath := fs.String("db-path", "phenomebench.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit the run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *repeats <= 0 {
		return errors.New("run requires --repeats > 0")
	}

	conns, inputCount, outputCount, err := resolveTopology(*topologyPath, *evaluatorName)
	if err != nil {
		return err
	}
	evaluator, err := newEvaluator(*evaluatorName, *mode, *addressBits)
	if err != nil {
		return err
	}
	opts := phenome.EngineOptions{Activation: *activation, ActivationCount: *activationCount, BoundedOutput: *boundedOutput}
	nodeCount, connectionCount := topologyCounts(conns, inputCount, outputCount)

	arrayPool := phenome.NewArrayPool()
	results := make([]evalstats.RunResult, 0, *repeats)
	for i := 0; i < *repeats; i++ {
		net, err := compileNetwork(*engineKind, conns, inputCount, outputCount, opts, arrayPool)
		if err != nil {
			return err
		}
		counted := phenome.Count(net)
		start := time.Now()
		fitness := evaluator.Evaluate(counted)
		elapsed := time.Since(start)
		net.Dispose()

		results = append(results, evalstats.RunResult{
			Fitness:     fitness,
			Activations: counted.Activations(),
			Elapsed:     elapsed,
		})
	}

	runID := benchstore.NewRunID()
	cfg := evalstats.RunConfig{
		RunID:        runID,
		Evaluator:    *evaluatorName,
		EngineKind:   *engineKind,
		NodeCount:    nodeCount,
		Connections:  connectionCount,
		Repeats:      *repeats,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}
	summary := evalstats.Summarize(runID, results)

	if *storeKind != "" {
		if err := persistRun(ctx, *storeKind, *dbPath, cfg, summary, results); err != nil {
			return err
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Config  evalstats.RunConfig  `json:"config"`
			Summary evalstats.RunSummary `json:"summary"`
		}{cfg, summary})
	}

	fmt.Println(evalstats.HumanReport(cfg, summary))
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("pool footprint: %s\n", evalstats.PoolFootprint(nodeCount))
	}
	return nil
}

func persistRun(ctx context.Context, storeKind, dbPath string, cfg evalstats.RunConfig, summary evalstats.RunSummary, results []evalstats.RunResult) error {
	store, err := benchstore.NewStore(storeKind, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = benchstore.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	run := benchstore.EvaluationRun{
		VersionedRecord: benchstore.VersionedRecord{
			SchemaVersion: benchstore.CurrentSchemaVersion,
			CodecVersion:  benchstore.CurrentCodecVersion,
		},
		RunID:   cfg.RunID,
		Config:  cfg,
		Summary: summary,
		Results: results,
	}
	return store.SaveRun(ctx, run)
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phenomebench.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs as JSON")
	if err := fs.Parse(args); err != nil {
		return err
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
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}
	for _, r := range runs {
		fmt.Println(evalstats.HumanReport(r.Config, r.Summary))
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id to show")
	compareTo := fs.String("compare-to", "", "report dominance against this run id's metrics")
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phenomebench.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit the run as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id := strings.TrimSpace(*runID)
	if id == "" {
		return errors.New("show requires --run-id")
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

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	fmt.Println(evalstats.HumanReport(run.Config, run.Summary))

	if other := strings.TrimSpace(*compareTo); other != "" {
		baseline, ok, err := store.GetRun(ctx, other)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("comparison run not found: %s", other)
		}
		fmt.Println(dominanceReport(id, run.Summary, other, baseline.Summary))
	}
	return nil
}

// dominanceReport compares a and b on the two metrics that matter for
// evaluator throughput/quality tradeoffs (average fitness and activations
// per second), in that order, so a run that is faster but less fit does
// not read as strictly better.
func dominanceReport(aID string, a evalstats.RunSummary, bID string, b evalstats.RunSummary) string {
	av := []float64{a.AvgFitness, a.ActivationsPerSec}
	bv := []float64{b.AvgFitness, b.ActivationsPerSec}
	switch {
	case evalstats.MetricsEqual(av, bv):
		return fmt.Sprintf("%s and %s have identical fitness/throughput metrics", aID, bID)
	case evalstats.MetricsDominates(av, bv):
		return fmt.Sprintf("%s dominates %s (no worse in any metric, strictly better overall)", aID, bID)
	case evalstats.MetricsDominatedBy(av, bv):
		return fmt.Sprintf("%s is dominated by %s", aID, bID)
	default:
		return fmt.Sprintf("%s and %s are incomparable (each wins on a different metric)", aID, bID)
	}
}

func runActivations(args []string) error {
	fs := flag.NewFlagSet("activations", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range phenome.ListActivations() {
		fmt.Println(name)
	}
	return nil
}
