package program

// Kind classifies an instruction.
type Kind int

const (
	// KindNoop is any unrecognised token; it only advances the program counter.
	KindNoop Kind = iota
	KindAssign
	KindIO
	KindCompute
	KindExit
)

// Instruction keywords.
const (
	KeywordIO      = "E/S"
	KeywordCompute = "COM"
	KeywordExit    = "SAIDA"
)

func (k Kind) String() string {
	switch k {
	case KindAssign:
		return "assign"
	case KindIO:
		return "io"
	case KindCompute:
		return "compute"
	case KindExit:
		return "exit"
	}
	return "noop"
}

// Register names one of the four general purpose registers.
type Register string

const (
	RegisterA Register = "A"
	RegisterB Register = "B"
	RegisterC Register = "C"
	RegisterD Register = "D"
)

// Registers lists register names in their print order.
var Registers = []Register{RegisterA, RegisterB, RegisterC, RegisterD}

// Valid reports whether r is a known register.
func (r Register) Valid() bool {
	switch r {
	case RegisterA, RegisterB, RegisterC, RegisterD:
		return true
	}
	return false
}

// Instruction is a single decoded program line.
type Instruction struct {
	Kind Kind
	Text string
	// Register and Value are set for KindAssign only.
	Register Register
	Value    int
}
