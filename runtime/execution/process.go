package execution

import (
	"fmt"

	"github.com/viant/rrsched/model/program"
)

// Process represents a schedulable program instance
type Process struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Program       *program.Program `json:"-"`
	PC            int              `json:"pc"`
	Registers     Registers        `json:"registers"`
	Status        Status           `json:"status"`
	WaitRemaining int              `json:"waitRemaining,omitempty"`
	// Dispatches counts turns the process received
	Dispatches int `json:"dispatches"`
	// Executed counts instructions the process ran
	Executed int `json:"executed"`
}

// NewProcess creates a ready process for the decoded program
func NewProcess(id int, prog *program.Program) *Process {
	return &Process{ID: id, Name: prog.Name, Program: prog, Status: StatusReady}
}

// Len returns the program length
func (p *Process) Len() int {
	return p.Program.Len()
}

// Exhausted reports whether the program counter reached the end of the program
func (p *Process) Exhausted() bool {
	return p.PC >= p.Len()
}

// ExecuteNext executes the instruction at PC and advances PC by one.
func (p *Process) ExecuteNext() error {
	if p.Status.IsTerminal() {
		return fmt.Errorf("process %v is %v", p.Name, p.Status)
	}
	if p.Exhausted() {
		return fmt.Errorf("process %v: program counter %d out of range", p.Name, p.PC)
	}
	instruction := p.Program.Instructions[p.PC]
	p.PC++
	p.Executed++
	switch instruction.Kind {
	case program.KindAssign:
		return p.Registers.Set(instruction.Register, instruction.Value)
	case program.KindIO:
		p.Status = StatusBlocked
	case program.KindExit:
		p.Status = StatusFinished
	}
	return nil
}

// Block moves the process to blocked with the given wait
func (p *Process) Block(wait int) {
	p.Status = StatusBlocked
	p.WaitRemaining = wait
}

// Tick decrements the wait timer, it returns true once the wait has elapsed.
func (p *Process) Tick() bool {
	p.WaitRemaining--
	return p.WaitRemaining <= 0
}

// Unblock makes a blocked process ready again
func (p *Process) Unblock() {
	p.Status = StatusReady
	p.WaitRemaining = 0
}

// Exit marks the process as finished
func (p *Process) Exit() {
	p.Status = StatusFinished
}

// String returns "NAME. A=a, B=b, C=c, D=d"
func (p *Process) String() string {
	return p.Name + ". " + p.Registers.String()
}
