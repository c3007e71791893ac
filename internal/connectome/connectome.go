// Package connectome compiles a sparse, ID-based connection list produced by
// a genome into a compact, index-based runtime graph.
package connectome

import "errors"

// ErrInvalidGraph is returned when a connection list fails the structural
// contract a graph builder checks: a negative input/output count or a
// negative node ID. Any ID at or above inputCount+outputCount is taken as a
// hidden node, so IDs are not range-checked beyond that.
var ErrInvalidGraph = errors.New("invalid graph")

// WeightedConnection is an ordered (source, target, weight) triple. Self-loops
// and parallel edges are permitted; duplicate connections are a genome
// contract error, not something a builder collapses.
type WeightedConnection struct {
	SourceID int
	TargetID int
	Weight   float64
}
