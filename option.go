package rrsched

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/service/dao"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithConfig sets the run configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFS sets the storage service used for processes and reports
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithReportDAO sets the report store, the default writes to Config.Output
func WithReportDAO(reports dao.Service[int, report.Report]) Option {
	return func(s *Service) {
		s.reports = reports
	}
}

// WithListener registers scheduler event listeners
func WithListener(listeners ...event.Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithLogger sets the operational logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProgress registers a callback invoked on every progress change
func WithProgress(onChange func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = onChange
	}
}

// WithTracing configures the stdout OpenTelemetry exporter, an empty
// outputFile writes to os.Stdout. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.initErr = err
		}
	}
}

// WithTracingExporter configures OpenTelemetry with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.initErr = err
		}
	}
}
