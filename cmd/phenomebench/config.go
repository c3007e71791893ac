package main

import (
	"encoding/json"
	"fmt"
	"os"

	"phenome/pkg/phenome"
)

// topologyFile is the on-disk JSON shape a --topology flag points at: a flat
// connection list plus the input/output vector sizes the connectome builder
// needs alongside it. It exists separately from phenome.Connection because
// that type carries no JSON tags of its own.
type topologyFile struct {
	InputCount  int                  `json:"input_count"`
	OutputCount int                  `json:"output_count"`
	Connections []topologyConnection `json:"connections"`
}

type topologyConnection struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

func loadTopology(path string) ([]phenome.Connection, int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read topology: %w", err)
	}
	var tf topologyFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, 0, 0, fmt.Errorf("parse topology: %w", err)
	}
	conns := make([]phenome.Connection, len(tf.Connections))
	for i, c := range tf.Connections {
		conns[i] = phenome.Connection{SourceID: c.Source, TargetID: c.Target, Weight: c.Weight}
	}
	return conns, tf.InputCount, tf.OutputCount, nil
}

// builtinTopology returns a hand-built demo network for evaluator when no
// --topology file is given, so the CLI has something to run out of the box.
func builtinTopology(evaluator string) (conns []phenome.Connection, inputCount, outputCount int, ok bool) {
	switch evaluator {
	case "xor":
		// bias(0), x1(1), x2(2) -> and(4), or(5) -> out(3)
		return []phenome.Connection{
			{SourceID: 0, TargetID: 4, Weight: -1.5},
			{SourceID: 1, TargetID: 4, Weight: 1},
			{SourceID: 2, TargetID: 4, Weight: 1},
			{SourceID: 0, TargetID: 5, Weight: 0.5},
			{SourceID: 1, TargetID: 5, Weight: 1},
			{SourceID: 2, TargetID: 5, Weight: 1},
			{SourceID: 4, TargetID: 3, Weight: -2},
			{SourceID: 5, TargetID: 3, Weight: 2},
		}, 3, 1, true
	default:
		return nil, 0, 0, false
	}
}

// resolveTopology loads a topology file when path is set, otherwise falls
// back to a built-in demo for evaluator.
func resolveTopology(path, evaluator string) ([]phenome.Connection, int, int, error) {
	if path != "" {
		return loadTopology(path)
	}
	conns, inputCount, outputCount, ok := builtinTopology(evaluator)
	if !ok {
		return nil, 0, 0, fmt.Errorf("no built-in topology for evaluator %q; pass --topology", evaluator)
	}
	return conns, inputCount, outputCount, nil
}

func newEvaluator(name, mode string, multiplexerAddressBits int) (phenome.Evaluator, error) {
	switch name {
	case "xor":
		return phenome.NewXOREvaluator(mode)
	case "multiplexer":
		return phenome.NewMultiplexerEvaluator(multiplexerAddressBits, mode)
	case "single-pole":
		return phenome.NewSinglePoleBalanceEvaluator(mode)
	case "double-pole":
		return phenome.NewDoublePoleBalanceEvaluator(mode)
	default:
		return nil, fmt.Errorf("unknown evaluator: %s", name)
	}
}

// topologyCounts reports the node and connection counts a run config
// records, derived from the connection list itself rather than from any
// compiled engine.
func topologyCounts(conns []phenome.Connection, inputCount, outputCount int) (nodeCount, connectionCount int) {
	maxID := inputCount + outputCount - 1
	for _, c := range conns {
		if c.SourceID > maxID {
			maxID = c.SourceID
		}
		if c.TargetID > maxID {
			maxID = c.TargetID
		}
	}
	return maxID + 1, len(conns)
}

// disposableNetwork is the engine-agnostic handle run.go compiles and runs:
// every concrete engine type satisfies phenome.Network plus Dispose.
type disposableNetwork interface {
	phenome.Network
	Dispose()
}

func compileNetwork(engineKind string, conns []phenome.Connection, inputCount, outputCount int, opts phenome.EngineOptions, arrayPool *phenome.ArrayPool) (disposableNetwork, error) {
	switch engineKind {
	case "cyclic":
		net, err := phenome.CompileCyclic(conns, inputCount, outputCount, opts, arrayPool)
		if err != nil {
			return nil, err
		}
		return net, nil
	case "acyclic":
		net, err := phenome.CompileAcyclic(conns, inputCount, outputCount, opts, arrayPool)
		if err != nil {
			return nil, err
		}
		return net, nil
	case "vectorized":
		net, err := phenome.CompileVectorized(conns, inputCount, outputCount, opts, arrayPool)
		if err != nil {
			return nil, err
		}
		return net, nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", engineKind)
	}
}
