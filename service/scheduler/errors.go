package scheduler

import "errors"

// ErrInvalidQuantum is returned when the quantum is not a positive integer.
var ErrInvalidQuantum = errors.New("invalid quantum")
