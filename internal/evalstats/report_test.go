package evalstats

import (
	"testing"
	"time"
)

func TestSummarizeComputesAggregates(t *testing.T) {
	results := []RunResult{
		{Fitness: 10, Activations: 1000, Elapsed: time.Millisecond},
		{Fitness: 20, Activations: 3000, Elapsed: time.Millisecond},
	}
	summary := Summarize("run-1", results)

	if summary.Repeats != 2 {
		t.Fatalf("expected 2 repeats, got %d", summary.Repeats)
	}
	if summary.AvgFitness != 15 {
		t.Fatalf("expected avg fitness 15, got %v", summary.AvgFitness)
	}
	if summary.MinFitness != 10 || summary.MaxFitness != 20 {
		t.Fatalf("min/max fitness wrong: %+v", summary)
	}
	if summary.TotalActivations != 4000 {
		t.Fatalf("expected 4000 total activations, got %d", summary.TotalActivations)
	}
	if summary.ActivationsPerSec <= 0 {
		t.Fatalf("expected positive throughput, got %v", summary.ActivationsPerSec)
	}
}

func TestSummarizeEmptyResultsIsZeroValue(t *testing.T) {
	summary := Summarize("run-empty", nil)
	if summary.Repeats != 0 || summary.AvgFitness != 0 || summary.ActivationsPerSec != 0 {
		t.Fatalf("expected zero-valued summary, got %+v", summary)
	}
}

func TestHumanReportIncludesEvaluatorAndCounts(t *testing.T) {
	cfg := RunConfig{RunID: "run-1", Evaluator: "xor", EngineKind: "acyclic", NodeCount: 5, Connections: 6}
	summary := Summarize("run-1", []RunResult{{Fitness: 1, Activations: 100, Elapsed: time.Millisecond}})
	report := HumanReport(cfg, summary)
	if report == "" {
		t.Fatal("expected non-empty report")
	}
}

func TestRunConfigAndResultsRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := RunConfig{RunID: "run-1", Evaluator: "xor", EngineKind: "acyclic", NodeCount: 5, Connections: 6, Repeats: 2}
	if err := WriteRunConfig(dir, cfg.RunID, cfg); err != nil {
		t.Fatalf("WriteRunConfig: %v", err)
	}
	gotCfg, ok, err := ReadRunConfig(dir, cfg.RunID)
	if err != nil || !ok {
		t.Fatalf("ReadRunConfig: ok=%v err=%v", ok, err)
	}
	if gotCfg != cfg {
		t.Fatalf("config round trip mismatch: got=%+v want=%+v", gotCfg, cfg)
	}

	results := []RunResult{
		{Fitness: 1.5, Activations: 10, Elapsed: 2 * time.Millisecond},
		{Fitness: 2.5, Activations: 20, Elapsed: 3 * time.Millisecond},
	}
	if err := WriteRunResults(dir, cfg.RunID, results); err != nil {
		t.Fatalf("WriteRunResults: %v", err)
	}
	gotResults, ok, err := ReadRunResults(dir, cfg.RunID)
	if err != nil || !ok {
		t.Fatalf("ReadRunResults: ok=%v err=%v", ok, err)
	}
	if len(gotResults) != len(results) {
		t.Fatalf("expected %d results, got %d", len(results), len(gotResults))
	}
	for i := range results {
		if gotResults[i].Fitness != results[i].Fitness || gotResults[i].Activations != results[i].Activations || gotResults[i].Elapsed != results[i].Elapsed {
			t.Fatalf("result %d mismatch: got=%+v want=%+v", i, gotResults[i], results[i])
		}
	}
}

func TestReadRunConfigMissingReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := ReadRunConfig(dir, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing run config")
	}
}

func TestBenchmarkExperimentRoundTripAndList(t *testing.T) {
	dir := t.TempDir()
	exp := BenchmarkExperiment{ID: "exp-1", Notes: "sweep", RunIDs: []string{"run-1", "run-2"}}
	if err := WriteBenchmarkExperiment(dir, exp); err != nil {
		t.Fatalf("WriteBenchmarkExperiment: %v", err)
	}

	got, ok, err := ReadBenchmarkExperiment(dir, "exp-1")
	if err != nil || !ok {
		t.Fatalf("ReadBenchmarkExperiment: ok=%v err=%v", ok, err)
	}
	if got.ID != exp.ID || len(got.RunIDs) != 2 {
		t.Fatalf("experiment round trip mismatch: %+v", got)
	}

	list, err := ListBenchmarkExperiments(dir)
	if err != nil {
		t.Fatalf("ListBenchmarkExperiments: %v", err)
	}
	if len(list) != 1 || list[0].ID != "exp-1" {
		t.Fatalf("expected single listed experiment, got %+v", list)
	}
}

func TestPoolFootprintFormatsBytes(t *testing.T) {
	if got := PoolFootprint(1000); got == "" {
		t.Fatal("expected non-empty footprint string")
	}
}

