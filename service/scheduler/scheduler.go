package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/rrsched/internal/clock"
	"github.com/viant/rrsched/internal/idgen"
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/program"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/runtime/execution"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/tracing"
)

// Scheduler simulates a single core preemptive round-robin scheduler. It is
// not safe for concurrent use.
type Scheduler struct {
	quantum   int
	runID     string
	catalog   *message.Catalog
	limits    program.Limits
	strict    bool
	listeners []event.Listener
	publisher *event.Publisher

	ready    Queue[*execution.Process]
	blocked  []*execution.Process
	finished []*execution.Process
	log      []string
	nextID   int

	contextSwitches int
	instructions    int
	iterations      int
}

// New creates a scheduler for quantum
func New(quantum int, opts ...Option) (*Scheduler, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: %d, expected a positive integer", ErrInvalidQuantum, quantum)
	}
	ret := &Scheduler{
		quantum: quantum,
		catalog: message.English(),
		limits:  program.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.runID == "" {
		ret.runID = idgen.RunID()
	}
	ret.publisher = event.NewPublisher(event.WithRunID(ret.runID), event.WithListener(ret.listeners...))
	return ret, nil
}

// LoadProcesses decodes sources in order and queues valid processes. Each
// source consumes an id whether or not it is loaded; ids keep increasing
// across calls. Oversized and empty
// sources are logged and skipped; a malformed instruction aborts loading.
func (s *Scheduler) LoadProcesses(ctx context.Context, sources []*program.Source) error {
	for _, source := range sources {
		id := s.nextID
		s.nextID++
		prog, err := program.Decode(source, s.limits, s.strict)
		if err != nil {
			diagnostic, ok := s.diagnostic(source, prog, err)
			if !ok {
				return fmt.Errorf("failed to load %v: %w", source.File, err)
			}
			s.skip(ctx, id, source.File, diagnostic)
			continue
		}
		process := execution.NewProcess(id, prog)
		s.ready.Push(process)
		s.record(event.KindLoaded, process, 0, fmt.Sprintf(s.catalog.Loading, process.Name))
		progress.UpdateCtx(ctx, progress.Delta{Loaded: 1})
	}
	return nil
}

func (s *Scheduler) diagnostic(source *program.Source, prog *program.Program, err error) (string, bool) {
	switch {
	case errors.Is(err, program.ErrOversizedFile):
		return fmt.Sprintf(s.catalog.OversizedFile, source.File, s.limits.MaxFileLines), true
	case errors.Is(err, program.ErrOversizedProgram):
		return fmt.Sprintf(s.catalog.OversizedProgram, prog.Name, s.limits.MaxInstructions), true
	case errors.Is(err, program.ErrEmptySource):
		return fmt.Sprintf(s.catalog.EmptySource, source.File), true
	}
	return "", false
}

func (s *Scheduler) skip(ctx context.Context, id int, file, diagnostic string) {
	s.log = append(s.log, diagnostic)
	anEvent := event.NewEvent(event.KindSkipped, id, file)
	anEvent.Message = diagnostic
	s.publisher.Publish(anEvent)
	progress.UpdateCtx(ctx, progress.Delta{Skipped: 1})
}

// Run schedules queued processes until both the ready and blocked queues
// are empty or ctx is done.
func (s *Scheduler) Run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.run", tracing.KindInternal)
	span.WithAttributes(map[string]string{"run": s.runID})
	span.WithInt("quantum", s.quantum)
	defer func() {
		span.WithInt("contextSwitches", s.contextSwitches)
		span.WithInt("instructions", s.instructions)
		tracing.EndSpan(span, err)
	}()

	for s.ready.Len() > 0 || len(s.blocked) > 0 {
		if err = ctx.Err(); err != nil {
			return err
		}
		s.iterations++
		if process, ok := s.ready.Pop(); ok {
			if err = s.dispatch(ctx, process); err != nil {
				return err
			}
		}
		s.tick(ctx)
	}
	return nil
}

// dispatch runs a single turn of process and classifies it afterwards.
func (s *Scheduler) dispatch(ctx context.Context, process *execution.Process) (err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.dispatch", tracing.KindInternal)
	span.WithAttributes(map[string]string{"process": process.Name})
	span.WithInt("pc", process.PC)
	defer func() { tracing.EndSpan(span, err) }()

	s.record(event.KindDispatched, process, 0, fmt.Sprintf(s.catalog.Executing, process.Name))
	executed := 0
	for executed < s.quantum && !process.Exhausted() && process.Status == execution.StatusReady {
		if err = process.ExecuteNext(); err != nil {
			return fmt.Errorf("failed to execute %v: %w", process.Name, err)
		}
		executed++
	}
	process.Dispatches++
	s.instructions += executed
	s.contextSwitches++
	span.WithInt("executed", executed)
	progress.UpdateCtx(ctx, progress.Delta{Dispatched: 1, Instructions: executed})

	switch {
	case process.Status == execution.StatusBlocked:
		process.Block(s.waitTime())
		s.blocked = append(s.blocked, process)
		span.AddEvent(string(event.KindBlocked), map[string]string{"wait": strconv.Itoa(process.WaitRemaining)})
		s.record(event.KindBlocked, process, executed, fmt.Sprintf(s.catalog.IOStarted, process.Name))
		progress.UpdateCtx(ctx, progress.Delta{Blocked: 1})
	case process.Status == execution.StatusFinished, process.Exhausted():
		s.finish(ctx, process, executed)
	default:
		s.ready.Push(process)
		s.record(event.KindPreempted, process, executed, fmt.Sprintf(s.catalog.Interrupting, process.Name, executed))
		progress.UpdateCtx(ctx, progress.Delta{Preempted: 1})
	}
	return nil
}

// finish covers both an explicit exit and a program that ran out of instructions.
func (s *Scheduler) finish(ctx context.Context, process *execution.Process, executed int) {
	process.Exit()
	s.finished = append(s.finished, process)
	s.record(event.KindFinished, process, executed, fmt.Sprintf(s.catalog.Terminated, process.String()))
	progress.UpdateCtx(ctx, progress.Delta{Finished: 1})
}

// tick advances every blocked wait timer and moves elapsed processes to the
// ready tail, keeping blocked order.
func (s *Scheduler) tick(ctx context.Context) {
	if len(s.blocked) == 0 {
		return
	}
	waiting := make([]*execution.Process, 0, len(s.blocked))
	for _, process := range s.blocked {
		if !process.Tick() {
			waiting = append(waiting, process)
			continue
		}
		process.Unblock()
		s.ready.Push(process)
		s.publish(event.KindUnblocked, process, 0, "")
		progress.UpdateCtx(ctx, progress.Delta{Unblocked: 1})
	}
	s.blocked = waiting
}

// waitTime returns ceil(quantum/2)
func (s *Scheduler) waitTime() int {
	return (s.quantum + 1) / 2
}

// record appends line to the run log and publishes the matching event.
func (s *Scheduler) record(kind event.Kind, process *execution.Process, executed int, line string) {
	s.log = append(s.log, line)
	s.publish(kind, process, executed, line)
}

func (s *Scheduler) publish(kind event.Kind, process *execution.Process, executed int, line string) {
	anEvent := event.NewEvent(kind, process.ID, process.Name)
	anEvent.Iteration = s.iterations
	anEvent.Instructions = executed
	anEvent.Message = line
	s.publisher.Publish(anEvent)
}

// Report computes run statistics over the current state
func (s *Scheduler) Report() *report.Report {
	ret := report.New(s.quantum, s.contextSwitches, s.instructions, len(s.finished))
	ret.RunID = s.runID
	ret.Locale = s.catalog.Locale
	ret.CreatedAt = clock.Now()
	ret.Log = s.Log()
	for _, process := range s.finished {
		ret.Processes = append(ret.Processes, &report.ProcessSummary{
			ID:           process.ID,
			Name:         process.Name,
			Registers:    process.Registers.String(),
			Dispatches:   process.Dispatches,
			Instructions: process.Executed,
		})
	}
	return ret
}

// Quantum returns the scheduler quantum
func (s *Scheduler) Quantum() int { return s.quantum }

// RunID returns the run id
func (s *Scheduler) RunID() string { return s.runID }

// Catalog returns the message catalog
func (s *Scheduler) Catalog() *message.Catalog { return s.catalog }

// Log returns a copy of the event log
func (s *Scheduler) Log() []string {
	ret := make([]string, len(s.log))
	copy(ret, s.log)
	return ret
}

// ContextSwitches returns the number of dispatches so far
func (s *Scheduler) ContextSwitches() int { return s.contextSwitches }

// Instructions returns the number of instructions executed so far
func (s *Scheduler) Instructions() int { return s.instructions }

// Iterations returns the number of outer loop iterations so far
func (s *Scheduler) Iterations() int { return s.iterations }

// Ready returns ready processes, head first
func (s *Scheduler) Ready() []*execution.Process { return s.ready.Items() }

// Blocked returns blocked processes in blocking order
func (s *Scheduler) Blocked() []*execution.Process {
	ret := make([]*execution.Process, len(s.blocked))
	copy(ret, s.blocked)
	return ret
}

// Finished returns finished processes in completion order
func (s *Scheduler) Finished() []*execution.Process {
	ret := make([]*execution.Process, len(s.finished))
	copy(ret, s.finished)
	return ret
}
