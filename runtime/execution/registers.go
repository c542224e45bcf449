package execution

import (
	"fmt"

	"github.com/viant/rrsched/model/program"
)

// Registers holds the four general purpose registers of a process
type Registers struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
}

// Set assigns value to the named register
func (r *Registers) Set(name program.Register, value int) error {
	switch name {
	case program.RegisterA:
		r.A = value
	case program.RegisterB:
		r.B = value
	case program.RegisterC:
		r.C = value
	case program.RegisterD:
		r.D = value
	default:
		return fmt.Errorf("%w: unknown register %q", program.ErrMalformedInstruction, name)
	}
	return nil
}

// Get returns the value of the named register
func (r *Registers) Get(name program.Register) (int, bool) {
	switch name {
	case program.RegisterA:
		return r.A, true
	case program.RegisterB:
		return r.B, true
	case program.RegisterC:
		return r.C, true
	case program.RegisterD:
		return r.D, true
	}
	return 0, false
}

func (r Registers) String() string {
	return fmt.Sprintf("A=%d, B=%d, C=%d, D=%d", r.A, r.B, r.C, r.D)
}
