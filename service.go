package rrsched

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/rrsched/internal/clock"
	"github.com/viant/rrsched/internal/idgen"
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/program"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/service/dao"
	reportfs "github.com/viant/rrsched/service/dao/report/fs"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/service/loader"
	"github.com/viant/rrsched/service/scheduler"
	"github.com/viant/rrsched/tracing"
)

// Service composes the loader, the scheduler and the report store
type Service struct {
	config     *Config
	fs         afs.Service
	loader     *loader.Service
	reports    dao.Service[int, report.Report]
	listeners  []event.Listener
	logger     logrus.FieldLogger
	onProgress func(progress.Progress)
	initErr    error
}

// Config returns the run configuration
func (s *Service) Config() *Config {
	return s.config
}

// Catalog returns the message catalog for the configured locale
func (s *Service) Catalog() *message.Catalog {
	return s.config.Catalog()
}

// Reports returns the report store
func (s *Service) Reports() dao.Service[int, report.Report] {
	return s.reports
}

// Run loads processes from Config.Processes, simulates them and saves the
// report.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	sources, err := s.loader.Load(ctx, s.config.Processes)
	if err != nil {
		return nil, err
	}
	aReport, err := s.Simulate(ctx, sources)
	if err != nil {
		return nil, err
	}
	if err = s.reports.Save(ctx, aReport); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"run":    aReport.RunID,
		"report": aReport.FileName(),
	}).Info("report saved")
	return aReport, nil
}

// Simulate runs a fresh scheduler over sources and returns its report.
func (s *Service) Simulate(ctx context.Context, sources []*program.Source) (aReport *report.Report, err error) {
	runID := idgen.RunID()
	ctx, span := tracing.StartSpan(ctx, "rrsched.simulate", tracing.KindInternal)
	span.WithAttributes(map[string]string{"run": runID})
	defer func() { tracing.EndSpan(span, err) }()

	logger := s.logger.WithFields(logrus.Fields{
		"run":     runID,
		"quantum": s.config.Quantum,
	})
	sched, err := scheduler.New(s.config.Quantum,
		scheduler.WithRunID(runID),
		scheduler.WithCatalog(s.Catalog()),
		scheduler.WithLimits(s.config.Limits),
		scheduler.WithStrict(s.config.Strict),
		scheduler.WithListener(s.listeners...),
	)
	if err != nil {
		return nil, err
	}
	ctx, tracker := progress.WithNewTracker(ctx, runID, s.config.Quantum, s.onProgress)
	started := clock.Now()
	if err = sched.LoadProcesses(ctx, sources); err != nil {
		logger.WithError(err).Error("failed to load processes")
		return nil, err
	}
	snapshot := tracker.Snapshot()
	logger.WithFields(logrus.Fields{
		"processes": snapshot.Loaded,
		"skipped":   snapshot.Skipped,
	}).Debug("processes loaded")

	if err = sched.Run(ctx); err != nil {
		logger.WithError(err).Error("simulation aborted")
		return nil, err
	}
	aReport = sched.Report()
	logger.WithFields(logrus.Fields{
		"contextSwitches": aReport.ContextSwitches,
		"instructions":    aReport.Instructions,
		"finished":        aReport.Finished,
		"elapsed":         clock.Since(started).String(),
	}).Info("simulation completed")
	return aReport, nil
}

// Compare renders actual and diffs it against the artifact at expectedURL,
// the result is empty when they match.
func (s *Service) Compare(ctx context.Context, expectedURL string, actual *report.Report) (string, error) {
	expectedURL = url.Normalize(expectedURL, file.Scheme)
	data, err := s.fs.DownloadWithURL(ctx, expectedURL)
	if err != nil {
		return "", fmt.Errorf("failed to read expected report %v: %w", expectedURL, err)
	}
	return report.DiffText(string(data), actual.Text(s.Catalog()), expectedURL, actual.FileName())
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.initErr != nil {
		return s.initErr
	}
	if s.config == nil {
		return fmt.Errorf("config was nil")
	}
	s.config.Limits = s.config.Limits.WithDefaults()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.loader = loader.New(s.fs)
	if s.reports == nil {
		output := s.config.Output
		if output == "" {
			output = DefaultOutputURL
		}
		reports, err := reportfs.New(ctx, output, reportfs.WithFS(s.fs), reportfs.WithCatalog(s.Catalog()))
		if err != nil {
			return err
		}
		s.reports = reports
	}
	return nil
}

// New creates a Service, WithConfig is required.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(context.Background(), options); err != nil {
		return nil, err
	}
	return ret, nil
}
