package benchstore

import (
	"encoding/json"
	"errors"

	"phenome/internal/evalstats"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// VersionedRecord tags a persisted record with the schema/codec pair it was
// written under, so a store can refuse to decode a record produced by an
// incompatible build instead of silently misreading it.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// EvaluationRun is the persisted record of one benchmark run: its config,
// its aggregated summary, and the per-repeat series that produced it.
type EvaluationRun struct {
	VersionedRecord
	RunID   string                `json:"run_id"`
	Config  evalstats.RunConfig   `json:"config"`
	Summary evalstats.RunSummary  `json:"summary"`
	Results []evalstats.RunResult `json:"results"`
}

func EncodeEvaluationRun(run EvaluationRun) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeEvaluationRun(data []byte) (EvaluationRun, error) {
	var run EvaluationRun
	if err := json.Unmarshal(data, &run); err != nil {
		return EvaluationRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return EvaluationRun{}, err
	}
	return run, nil
}

func EncodeExperiment(exp evalstats.BenchmarkExperiment) ([]byte, error) {
	return json.Marshal(exp)
}

func DecodeExperiment(data []byte) (evalstats.BenchmarkExperiment, error) {
	var exp evalstats.BenchmarkExperiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return evalstats.BenchmarkExperiment{}, err
	}
	return exp, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
