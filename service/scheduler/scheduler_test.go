package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/program"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/runtime/execution"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func source(file string, lines ...string) *program.Source {
	return &program.Source{File: file, Lines: lines}
}

func commands(prefix []string, n int, command string, suffix ...string) []string {
	ret := append([]string{}, prefix...)
	for i := 0; i < n; i++ {
		ret = append(ret, command)
	}
	return append(ret, suffix...)
}

func run(t *testing.T, quantum int, sources []*program.Source, opts ...Option) *Scheduler {
	t.Helper()
	srv, err := New(quantum, opts...)
	require.NoError(t, err)
	require.NoError(t, srv.LoadProcesses(context.Background(), sources))
	require.NoError(t, srv.Run(context.Background()))
	return srv
}

func TestNew(t *testing.T) {
	for _, quantum := range []int{0, -1} {
		_, err := New(quantum)
		assert.True(t, errors.Is(err, ErrInvalidQuantum))
	}
	srv, err := New(3, WithRunID("run-1"))
	require.NoError(t, err)
	assert.Equal(t, 3, srv.Quantum())
	assert.Equal(t, "run-1", srv.RunID())
	assert.Same(t, message.English(), srv.Catalog())

	srv, err = New(3)
	require.NoError(t, err)
	assert.NotEmpty(t, srv.RunID())
}

func TestScheduler_AssignAndExit(t *testing.T) {
	for _, quantum := range []int{2, 3, 10} {
		t.Run(fmt.Sprintf("quantum %d", quantum), func(t *testing.T) {
			srv := run(t, quantum, []*program.Source{source("p1.txt", "P1", "A=5", "SAIDA")})
			finished := srv.Finished()
			require.Len(t, finished, 1)
			assert.Equal(t, 5, finished[0].Registers.A)
			assert.Equal(t, 1, finished[0].Dispatches)
			assert.Equal(t, 2, finished[0].Executed)
			assert.Equal(t, 1, srv.ContextSwitches())
			assert.Equal(t, 2, srv.Instructions())
			assert.Equal(t, []string{"Loading P1", "Executing P1", "P1. A=5, B=0, C=0, D=0 terminated."}, srv.Log())
		})
	}
}

func TestScheduler_BlockTiming(t *testing.T) {
	for _, quantum := range []int{1, 2, 3, 4, 5, 8} {
		t.Run(fmt.Sprintf("quantum %d", quantum), func(t *testing.T) {
			expectWait := (quantum + 1) / 2
			var srv *Scheduler
			var waitAtBlock []int
			recorder := &event.Recorder{}
			listener := func(e *event.Event) {
				if e.Kind == event.KindBlocked {
					blocked := srv.Blocked()
					waitAtBlock = append(waitAtBlock, blocked[len(blocked)-1].WaitRemaining)
				}
			}
			var err error
			srv, err = New(quantum, WithListener(recorder.Listen, listener))
			require.NoError(t, err)
			require.NoError(t, srv.LoadProcesses(context.Background(), []*program.Source{source("p.txt", "P", "E/S", "A=1")}))
			require.NoError(t, srv.Run(context.Background()))

			blocked := recorder.Filter(event.KindBlocked)
			unblocked := recorder.Filter(event.KindUnblocked)
			require.Len(t, blocked, 1)
			require.Len(t, unblocked, 1)
			assert.Equal(t, 1, blocked[0].Instructions)
			assert.Equal(t, []int{expectWait}, waitAtBlock)
			assert.Equal(t, expectWait, unblocked[0].Iteration-blocked[0].Iteration+1)

			dispatched := recorder.Filter(event.KindDispatched)
			require.Len(t, dispatched, 2)
			assert.Equal(t, unblocked[0].Iteration+1, dispatched[1].Iteration)

			finished := srv.Finished()
			require.Len(t, finished, 1)
			assert.Equal(t, 1, finished[0].Registers.A)
			assert.Equal(t, 2, finished[0].PC)
			assert.Equal(t, 2, srv.ContextSwitches())
			assert.Equal(t, 2, srv.Instructions())
		})
	}
}

func TestScheduler_QuantumPreemption(t *testing.T) {
	srv := run(t, 3, []*program.Source{source("p.txt", commands([]string{"P"}, 7, "COM", "SAIDA")...)})
	assert.Equal(t, 3, srv.ContextSwitches())
	assert.Equal(t, 8, srv.Instructions())
	assert.Equal(t, []string{
		"Loading P",
		"Executing P",
		"Interrupting P after 3 instructions",
		"Executing P",
		"Interrupting P after 3 instructions",
		"Executing P",
		"P. A=0, B=0, C=0, D=0 terminated.",
	}, srv.Log())
	aReport := srv.Report()
	assert.InDelta(t, 3.0, aReport.AverageContextSwitches, 1e-9)
	assert.InDelta(t, 8.0/3.0, aReport.AverageInstructions, 1e-9)
}

func TestScheduler_LoadProcesses(t *testing.T) {
	big := source("a_big.txt", commands([]string{"BIG"}, 22, "COM")...)
	testCases := []struct {
		description string
		sources     []*program.Source
		opts        []Option
		expectLog   []string
		expectIDs   []int
		expectErr   error
	}{
		{
			description: "oversized file is skipped",
			sources:     []*program.Source{big},
			expectLog:   []string{"Error: file a_big.txt exceeds the 22 line limit and will be ignored."},
		},
		{
			description: "skipped entries consume ids",
			sources:     []*program.Source{big, source("b.txt", "P1", "SAIDA"), source("c.txt", "P2", "SAIDA")},
			expectLog:   []string{"Error: file a_big.txt exceeds the 22 line limit and will be ignored.", "Loading P1", "Loading P2"},
			expectIDs:   []int{1, 2},
		},
		{
			description: "oversized program is skipped",
			sources:     []*program.Source{big, source("b.txt", "P1", "SAIDA")},
			opts:        []Option{WithLimits(program.Limits{MaxFileLines: 30})},
			expectLog:   []string{"Error: program BIG has more than 21 commands and will be ignored.", "Loading P1"},
			expectIDs:   []int{1},
		},
		{
			description: "empty source is skipped",
			sources:     []*program.Source{source("empty.txt"), source("b.txt", "P1", "SAIDA")},
			expectLog:   []string{"Error: file empty.txt is empty and will be ignored.", "Loading P1"},
			expectIDs:   []int{1},
		},
		{
			description: "portuguese diagnostics",
			sources:     []*program.Source{big},
			opts:        []Option{WithCatalog(message.Portuguese())},
			expectLog:   []string{"Erro: O arquivo a_big.txt excede o limite de 22 linhas e será ignorado."},
		},
		{
			description: "malformed assignment aborts",
			sources:     []*program.Source{source("a.txt", "P1", "SAIDA"), source("b.txt", "P2", "Z=1")},
			expectErr:   program.ErrMalformedInstruction,
		},
		{
			description: "unknown token loads by default",
			sources:     []*program.Source{source("a.txt", "P1", "JMP", "SAIDA")},
			expectLog:   []string{"Loading P1"},
			expectIDs:   []int{0},
		},
		{
			description: "unknown token rejected when strict",
			sources:     []*program.Source{source("a.txt", "P1", "JMP", "SAIDA")},
			opts:        []Option{WithStrict(true)},
			expectErr:   program.ErrMalformedInstruction,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			srv, err := New(2, tc.opts...)
			require.NoError(t, err)
			err = srv.LoadProcesses(context.Background(), tc.sources)
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), fmt.Sprintf("%v", err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectLog, srv.Log())
			var ids []int
			for _, process := range srv.Ready() {
				ids = append(ids, process.ID)
			}
			assert.Equal(t, tc.expectIDs, ids)

			require.NoError(t, srv.Run(context.Background()))
			assert.Len(t, srv.Finished(), len(tc.expectIDs))
		})
	}
}

func TestScheduler_LoadProcesses_IDsAcrossCalls(t *testing.T) {
	srv, err := New(2)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, srv.LoadProcesses(ctx, []*program.Source{source("a.txt", "P1", "SAIDA"), source("empty.txt")}))
	require.NoError(t, srv.LoadProcesses(ctx, []*program.Source{source("b.txt", "P2", "SAIDA"), source("c.txt", "P3", "SAIDA")}))

	var ids []int
	for _, process := range srv.Ready() {
		ids = append(ids, process.ID)
	}
	assert.Equal(t, []int{0, 2, 3}, ids)
}

func TestScheduler_NothingLoaded(t *testing.T) {
	srv := run(t, 4, []*program.Source{source("a_big.txt", commands([]string{"BIG"}, 22, "COM")...)})
	assert.Empty(t, srv.Finished())
	assert.Equal(t, 0, srv.ContextSwitches())
	assert.Equal(t, 0, srv.Iterations())
	aReport := srv.Report()
	assert.Equal(t, 0.0, aReport.AverageContextSwitches)
	assert.Equal(t, 0.0, aReport.AverageInstructions)
	assert.Equal(t, "Error: file a_big.txt exceeds the 22 line limit and will be ignored.\nAVERAGE CONTEXT SWITCHES: 0.00\nAVERAGE INSTRUCTIONS: 0.00\nQUANTUM: 4\n", aReport.Text(nil))
}

func TestScheduler_Interleaving(t *testing.T) {
	srv := run(t, 2, []*program.Source{
		source("p1.txt", "P1", "A=1", "E/S", "B=2", "SAIDA"),
		source("p2.txt", "P2", "COM", "COM", "COM", "SAIDA"),
	}, WithCatalog(message.Portuguese()))

	aReport := srv.Report()
	assert.Equal(t, `Carregando P1
Carregando P2
Executando P1
E/S iniciada em P1
Executando P2
Interrompendo P2 após 2 instruções
Executando P1
P1. A=1, B=2, C=0, D=0 terminado.
Executando P2
P2. A=0, B=0, C=0, D=0 terminado.
MEDIA DE TROCAS: 2.00
MEDIA DE INSTRUCOES: 2.00
QUANTUM: 2
`, aReport.Text(message.Portuguese()))
	assert.Equal(t, message.LocalePT, aReport.Locale)
	require.Len(t, aReport.Processes, 2)
	assert.Equal(t, "P1", aReport.Processes[0].Name)
	assert.Equal(t, "A=1, B=2, C=0, D=0", aReport.Processes[0].Registers)
	assert.Equal(t, 2, aReport.Processes[0].Dispatches)
	assert.Equal(t, 4, aReport.Processes[1].Instructions)
}

func TestScheduler_BlockedOnlyIterations(t *testing.T) {
	srv := run(t, 6, []*program.Source{source("p.txt", "P", "E/S", "SAIDA")})
	assert.Equal(t, 4, srv.Iterations())
	assert.Equal(t, 2, srv.ContextSwitches())
	assert.Len(t, srv.Finished(), 1)
	assert.Empty(t, srv.Blocked())
	assert.Empty(t, srv.Ready())
}

func TestScheduler_ImplicitExit(t *testing.T) {
	testCases := []struct {
		description    string
		program        []string
		quantum        int
		expectSwitches int
		expectLog      []string
	}{
		{
			description:    "program ends inside a turn",
			program:        []string{"P", "COM"},
			quantum:        5,
			expectSwitches: 1,
			expectLog:      []string{"Loading P", "Executing P", "P. A=0, B=0, C=0, D=0 terminated."},
		},
		{
			description:    "program ends on quantum boundary",
			program:        []string{"P", "B=3", "COM"},
			quantum:        2,
			expectSwitches: 1,
			expectLog:      []string{"Loading P", "Executing P", "P. A=0, B=3, C=0, D=0 terminated."},
		},
		{
			description:    "name only",
			program:        []string{"P"},
			quantum:        1,
			expectSwitches: 1,
			expectLog:      []string{"Loading P", "Executing P", "P. A=0, B=0, C=0, D=0 terminated."},
		},
		{
			description:    "io as last instruction",
			program:        []string{"P", "E/S"},
			quantum:        1,
			expectSwitches: 2,
			expectLog:      []string{"Loading P", "Executing P", "I/O started on P", "Executing P", "P. A=0, B=0, C=0, D=0 terminated."},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			srv := run(t, tc.quantum, []*program.Source{source("p.txt", tc.program...)})
			assert.Equal(t, tc.expectSwitches, srv.ContextSwitches())
			assert.Equal(t, tc.expectLog, srv.Log())
			require.Len(t, srv.Finished(), 1)
			assert.Equal(t, execution.StatusFinished, srv.Finished()[0].Status)
		})
	}
}

func TestScheduler_Invariants(t *testing.T) {
	sources := []*program.Source{
		source("a.txt", "P1", "A=1", "E/S", "COM", "COM", "E/S", "B=2", "COM", "SAIDA"),
		source("b.txt", "P2", "COM", "COM", "COM", "COM", "COM", "COM", "COM"),
		source("c.txt", "P3", "E/S", "E/S", "E/S", "SAIDA", "A=9"),
		source("d.txt", "P4", "C=-4", "D=4", "SAIDA"),
	}
	for quantum := 1; quantum <= 6; quantum++ {
		t.Run(fmt.Sprintf("quantum %d", quantum), func(t *testing.T) {
			var srv *Scheduler
			lastPC := map[int]int{}
			finishedAt := map[int]int{}
			dispatches := 0
			executed := 0
			listener := func(e *event.Event) {
				assert.NotContains(t, finishedAt, e.ProcessID, "event %v after finish", e.Kind)
				switch e.Kind {
				case event.KindDispatched:
					dispatches++
				case event.KindFinished:
					finishedAt[e.ProcessID] = e.Seq
				}
				if e.Kind == event.KindBlocked || e.Kind == event.KindFinished || e.Kind == event.KindPreempted {
					executed += e.Instructions
					assert.LessOrEqual(t, e.Instructions, quantum)
				}
				for _, process := range append(srv.Ready(), srv.Blocked()...) {
					assert.GreaterOrEqual(t, process.PC, lastPC[process.ID])
					assert.LessOrEqual(t, process.PC, process.Len())
					lastPC[process.ID] = process.PC
				}
			}
			var err error
			srv, err = New(quantum, WithListener(listener))
			require.NoError(t, err)
			require.NoError(t, srv.LoadProcesses(context.Background(), sources))
			require.NoError(t, srv.Run(context.Background()))

			assert.Equal(t, dispatches, srv.ContextSwitches())
			assert.Equal(t, executed, srv.Instructions())
			assert.Len(t, srv.Finished(), len(sources))
			for _, process := range srv.Finished() {
				assert.Equal(t, execution.StatusFinished, process.Status)
				assert.LessOrEqual(t, process.PC, process.Len())
			}
		})
	}
}

func TestScheduler_Cancelled(t *testing.T) {
	srv, err := New(1)
	require.NoError(t, err)
	require.NoError(t, srv.LoadProcesses(context.Background(), []*program.Source{source("p.txt", "P", "COM", "SAIDA")}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = srv.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, srv.ContextSwitches())
	assert.Len(t, srv.Ready(), 1)
}

func TestScheduler_Progress(t *testing.T) {
	ctx, tracker := progress.WithNewTracker(context.Background(), "run", 2, nil)
	srv, err := New(2)
	require.NoError(t, err)
	require.NoError(t, srv.LoadProcesses(ctx, []*program.Source{
		source("a.txt", commands([]string{"BIG"}, 22, "COM")...),
		source("b.txt", "P1", "A=1", "E/S", "B=2", "SAIDA"),
		source("c.txt", "P2", "COM", "COM", "COM", "SAIDA"),
	}))
	require.NoError(t, srv.Run(ctx))

	snapshot := tracker.Snapshot()
	assert.Equal(t, 2, snapshot.Loaded)
	assert.Equal(t, 1, snapshot.Skipped)
	assert.Equal(t, 4, snapshot.Dispatched)
	assert.Equal(t, 8, snapshot.Instructions)
	assert.Equal(t, 1, snapshot.Preempted)
	assert.Equal(t, 1, snapshot.Blocked)
	assert.Equal(t, 1, snapshot.Unblocked)
	assert.Equal(t, 2, snapshot.Finished)
	assert.Equal(t, 0, snapshot.Waiting())
}

func TestScheduler_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider, err := tracing.NewProvider("rrsched", "test", exporter)
	require.NoError(t, err)
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	run(t, 3, []*program.Source{source("p.txt", commands([]string{"P"}, 7, "COM", "SAIDA")...)})

	spans := exporter.GetSpans()
	require.Len(t, spans, 4)
	root := spans[len(spans)-1]
	assert.Equal(t, "scheduler.run", root.Name)
	for _, span := range spans[:3] {
		assert.Equal(t, "scheduler.dispatch", span.Name)
		assert.Equal(t, root.SpanContext.SpanID(), span.Parent.SpanID())
	}
}
