package benchstore

import "github.com/google/uuid"

// NewRunID mints a run identifier for a benchmark run that has none yet.
func NewRunID() string {
	return uuid.NewString()
}
