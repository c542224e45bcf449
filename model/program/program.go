package program

import "fmt"

// Default source limits: one name line plus at most 21 instructions.
const (
	DefaultMaxFileLines    = 22
	DefaultMaxInstructions = 21
)

// Limits bounds the size of a process source.
type Limits struct {
	MaxFileLines    int `json:"maxFileLines,omitempty" yaml:"maxFileLines,omitempty"`
	MaxInstructions int `json:"maxInstructions,omitempty" yaml:"maxInstructions,omitempty"`
}

// DefaultLimits returns the standard source limits.
func DefaultLimits() Limits {
	return Limits{MaxFileLines: DefaultMaxFileLines, MaxInstructions: DefaultMaxInstructions}
}

// WithDefaults fills unset limits with their defaults.
func (l Limits) WithDefaults() Limits {
	if l.MaxFileLines <= 0 {
		l.MaxFileLines = DefaultMaxFileLines
	}
	if l.MaxInstructions <= 0 {
		l.MaxInstructions = DefaultMaxInstructions
	}
	return l
}

// Program is a decoded, immutable process definition.
type Program struct {
	Name         string
	File         string
	Instructions []*Instruction
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Instructions)
}

// Decode checks source against limits and parses its instructions. The
// first line names the process, the remaining lines are instructions.
//
// On ErrOversizedProgram the returned Program carries the name only, so that
// callers can report which program was rejected.
func Decode(source *Source, limits Limits, strict bool) (*Program, error) {
	limits = limits.WithDefaults()
	lines := source.Lines
	if len(lines) > limits.MaxFileLines {
		return nil, fmt.Errorf("%w: %s has %d lines, limit is %d", ErrOversizedFile, source.File, len(lines), limits.MaxFileLines)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, source.File)
	}
	ret := &Program{Name: lines[0], File: source.File}
	commands := lines[1:]
	if len(commands) > limits.MaxInstructions {
		return ret, fmt.Errorf("%w: %s has %d instructions, limit is %d", ErrOversizedProgram, ret.Name, len(commands), limits.MaxInstructions)
	}
	ret.Instructions = make([]*Instruction, 0, len(commands))
	for i, text := range commands {
		instruction, err := Parse(text, strict)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source.File, i+2, err)
		}
		ret.Instructions = append(ret.Instructions, instruction)
	}
	return ret, nil
}
