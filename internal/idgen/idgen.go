// Package idgen issues identifiers for scheduler runs. Callers treat the
// value as opaque; tests replace NewFunc to get stable ids.
package idgen

import "github.com/google/uuid"

// NewFunc produces a fresh identifier.
var NewFunc = func() string { return uuid.NewString() }

// RunID returns the identifier of a new scheduler run.
func RunID() string { return NewFunc() }
