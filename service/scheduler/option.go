package scheduler

import (
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/program"
	"github.com/viant/rrsched/service/event"
)

type Option func(s *Scheduler)

// WithCatalog sets the message catalog used for log lines
func WithCatalog(catalog *message.Catalog) Option {
	return func(s *Scheduler) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithLimits sets source limits
func WithLimits(limits program.Limits) Option {
	return func(s *Scheduler) {
		s.limits = limits.WithDefaults()
	}
}

// WithStrict rejects unknown instruction tokens at load time
func WithStrict(strict bool) Option {
	return func(s *Scheduler) {
		s.strict = strict
	}
}

// WithListener registers event listeners
func WithListener(listeners ...event.Listener) Option {
	return func(s *Scheduler) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithRunID sets the run id, a random one is used otherwise
func WithRunID(runID string) Option {
	return func(s *Scheduler) {
		s.runID = runID
	}
}
