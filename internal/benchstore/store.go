package benchstore

import (
	"context"

	"phenome/internal/evalstats"
)

// Store defines transaction-like persistence for benchmark runs and the
// experiments that group them.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run EvaluationRun) error
	GetRun(ctx context.Context, runID string) (EvaluationRun, bool, error)
	ListRuns(ctx context.Context) ([]EvaluationRun, error)
	SaveExperiment(ctx context.Context, exp evalstats.BenchmarkExperiment) error
	GetExperiment(ctx context.Context, id string) (evalstats.BenchmarkExperiment, bool, error)
}
