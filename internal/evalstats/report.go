// Package evalstats reports on repeated phenome evaluator runs: how many
// activations per second an engine sustains, how fitness distributes across
// repeated runs of the same evaluator, and how much pooled-array memory a
// benchmark run touched.
package evalstats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"phenome/internal/nn"
)

// RunConfig identifies what a benchmark run measured: which evaluator, on
// which engine kind, over how many repeats.
type RunConfig struct {
	RunID        string `json:"run_id"`
	Evaluator    string `json:"evaluator"`
	EngineKind   string `json:"engine_kind"` // "cyclic", "acyclic", "vectorized"
	NodeCount    int    `json:"node_count"`
	Connections  int    `json:"connections"`
	Repeats      int    `json:"repeats"`
	Seed         int64  `json:"seed"`
	CreatedAtUTC string `json:"created_at_utc"`
}

// RunResult is the outcome of a single repeat within a benchmark run.
type RunResult struct {
	Fitness     float64       `json:"fitness"`
	Activations int64         `json:"activations"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// RunSummary aggregates RunResult values from one benchmark run.
type RunSummary struct {
	RunID             string        `json:"run_id"`
	Repeats           int           `json:"repeats"`
	AvgFitness        float64       `json:"avg_fitness"`
	StdFitness        float64       `json:"std_fitness"`
	MinFitness        float64       `json:"min_fitness"`
	MaxFitness        float64       `json:"max_fitness"`
	TotalActivations  int64         `json:"total_activations"`
	ActivationsPerSec float64       `json:"activations_per_sec"`
	TotalElapsed      time.Duration `json:"total_elapsed_ns"`
}

// Summarize reduces a run's repeats into a RunSummary. It never fails:
// an empty results slice yields a zero-valued summary.
func Summarize(runID string, results []RunResult) RunSummary {
	summary := RunSummary{RunID: runID, Repeats: len(results)}
	if len(results) == 0 {
		return summary
	}

	fitnessValues := make([]float64, len(results))
	for i, r := range results {
		fitnessValues[i] = r.Fitness
		summary.TotalActivations += r.Activations
		summary.TotalElapsed += r.Elapsed
	}

	summary.AvgFitness, _ = nn.Avg(fitnessValues)
	summary.StdFitness, _ = nn.Std(fitnessValues)
	summary.MinFitness = minFloat(fitnessValues)
	summary.MaxFitness = maxFloat(fitnessValues)

	if seconds := summary.TotalElapsed.Seconds(); seconds > 0 {
		summary.ActivationsPerSec = float64(summary.TotalActivations) / seconds
	}
	return summary
}

// HumanReport renders a RunSummary the way an operator reads it at a
// terminal: comma-grouped counts and a throughput figure, using the same
// humanize conventions the rest of this module's CLI output follows.
func HumanReport(cfg RunConfig, summary RunSummary) string {
	return fmt.Sprintf(
		"run %s (%s/%s, %s nodes, %s connections): %s activations in %s (%s/s), fitness avg=%.4f min=%.4f max=%.4f",
		cfg.RunID, cfg.Evaluator, cfg.EngineKind,
		humanize.Comma(int64(cfg.NodeCount)), humanize.Comma(int64(cfg.Connections)),
		humanize.Comma(summary.TotalActivations), summary.TotalElapsed,
		humanize.Comma(int64(summary.ActivationsPerSec)),
		summary.AvgFitness, summary.MinFitness, summary.MaxFitness,
	)
}

// PoolFootprint reports the byte size a pooled activation buffer
// contributes, formatted with humanize.Bytes for console reporting.
func PoolFootprint(floatCount int) string {
	const bytesPerFloat64 = 8
	return humanize.Bytes(uint64(floatCount * bytesPerFloat64))
}

// BenchmarkExperiment groups the run IDs of a multi-evaluator benchmark
// sweep together with bookkeeping about when it ran.
type BenchmarkExperiment struct {
	ID             string   `json:"id"`
	Notes          string   `json:"notes,omitempty"`
	StartedAtUTC   string   `json:"started_at_utc,omitempty"`
	CompletedAtUTC string   `json:"completed_at_utc,omitempty"`
	RunIDs         []string `json:"run_ids,omitempty"`
}

const experimentsDir = "experiments"

func experimentPath(baseDir, id string) string {
	return filepath.Join(baseDir, experimentsDir, id, "experiment.json")
}

func WriteBenchmarkExperiment(baseDir string, exp BenchmarkExperiment) error {
	if exp.ID == "" {
		return fmt.Errorf("experiment id is required")
	}
	path := experimentPath(baseDir, exp.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeJSON(path, exp)
}

func ReadBenchmarkExperiment(baseDir, id string) (BenchmarkExperiment, bool, error) {
	if id == "" {
		return BenchmarkExperiment{}, false, fmt.Errorf("experiment id is required")
	}
	data, err := os.ReadFile(experimentPath(baseDir, id))
	if err != nil {
		if os.IsNotExist(err) {
			return BenchmarkExperiment{}, false, nil
		}
		return BenchmarkExperiment{}, false, err
	}
	var exp BenchmarkExperiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return BenchmarkExperiment{}, false, err
	}
	return exp, true, nil
}

func ListBenchmarkExperiments(baseDir string) ([]BenchmarkExperiment, error) {
	root := filepath.Join(baseDir, experimentsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []BenchmarkExperiment{}, nil
		}
		return nil, err
	}

	exps := make([]BenchmarkExperiment, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exp, ok, err := ReadBenchmarkExperiment(baseDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i].ID < exps[j].ID })
	return exps, nil
}

// WriteRunConfig and WriteRunResults persist one run's config and repeat
// series as sibling files under baseDir/runID, config as JSON and results
// as CSV so a spreadsheet can chart throughput across repeats directly.
func WriteRunConfig(baseDir, runID string, cfg RunConfig) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, "config.json"), cfg)
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	path := filepath.Join(baseDir, runID, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunConfig{}, false, nil
		}
		return RunConfig{}, false, err
	}
	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, false, err
	}
	return cfg, true, nil
}

func WriteRunResults(baseDir, runID string, results []RunResult) error {
	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(runDir, "results.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"repeat", "fitness", "activations", "elapsed_ns"}); err != nil {
		return err
	}
	for i, r := range results {
		if err := writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(r.Fitness, 'f', -1, 64),
			strconv.FormatInt(r.Activations, 10),
			strconv.FormatInt(int64(r.Elapsed), 10),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadRunResults(baseDir, runID string) ([]RunResult, bool, error) {
	path := filepath.Join(baseDir, runID, "results.csv")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return []RunResult{}, true, nil
		}
		return nil, false, err
	}

	results := make([]RunResult, 0, 128)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if len(record) < 4 {
			return nil, false, fmt.Errorf("results row must have at least 4 columns")
		}
		fitness, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		activations, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, false, err
		}
		elapsed, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, false, err
		}
		results = append(results, RunResult{Fitness: fitness, Activations: activations, Elapsed: time.Duration(elapsed)})
	}
	return results, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func minFloat(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxFloat(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
