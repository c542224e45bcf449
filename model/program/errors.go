package program

import "errors"

// Load-time conditions. The oversized and empty conditions are recoverable:
// the scheduler logs them and moves on to the next source. A malformed
// instruction aborts loading.
var (
	// ErrOversizedFile is returned when a source has more lines than allowed.
	ErrOversizedFile = errors.New("program: file exceeds line limit")

	// ErrOversizedProgram is returned when a program has more instructions
	// than allowed.
	ErrOversizedProgram = errors.New("program: too many instructions")

	// ErrEmptySource is returned when a source has no lines at all.
	ErrEmptySource = errors.New("program: empty source")

	// ErrMalformedInstruction is returned for an assignment that does not
	// name a known register or integer value, and, in strict mode, for any
	// unrecognised instruction.
	ErrMalformedInstruction = errors.New("program: malformed instruction")
)
