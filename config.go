package rrsched

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/program"
	"github.com/viant/rrsched/service/meta"
	"github.com/viant/rrsched/service/scheduler"
	"github.com/viant/toolbox"
)

// Default locations
const (
	DefaultConfigURL    = "quantum.txt"
	DefaultProcessesURL = "processes"
	DefaultOutputURL    = "."
)

// Config is a serialisable representation of a simulation run.
type Config struct {
	Quantum   int            `json:"quantum" yaml:"quantum"`
	Processes string         `json:"processes,omitempty" yaml:"processes,omitempty"`
	Output    string         `json:"output,omitempty" yaml:"output,omitempty"`
	Locale    string         `json:"locale,omitempty" yaml:"locale,omitempty"`
	Strict    bool           `json:"strict,omitempty" yaml:"strict,omitempty"`
	Limits    program.Limits `json:"limits,omitempty" yaml:"limits,omitempty"`
}

// DefaultConfig returns a Config with every field but Quantum set.
func DefaultConfig() *Config {
	return &Config{
		Processes: DefaultProcessesURL,
		Output:    DefaultOutputURL,
		Locale:    message.LocaleEN,
		Limits:    program.DefaultLimits(),
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: quantum must be > 0, but had %d", scheduler.ErrInvalidQuantum, c.Quantum)
	}
	if _, ok := message.Lookup(c.Locale); !ok {
		return fmt.Errorf("unsupported locale: %q, supported: %v", c.Locale, message.Locales())
	}
	if c.Limits.MaxFileLines < 0 || c.Limits.MaxInstructions < 0 {
		return fmt.Errorf("limits must not be negative: %+v", c.Limits)
	}
	if c.Processes == "" {
		return fmt.Errorf("processes location was empty")
	}
	return nil
}

// Catalog returns the message catalog for the configured locale.
func (c *Config) Catalog() *message.Catalog {
	catalog, _ := message.Lookup(c.Locale)
	return catalog
}

// LoadConfig reads configuration from URL. A .yaml, .yml or .json resource is
// decoded over DefaultConfig; any other resource holds the quantum alone.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	metaService := meta.New(fs)
	ret := DefaultConfig()
	if meta.IsStructured(URL) {
		if err := metaService.Load(ctx, URL, ret); err != nil {
			return nil, err
		}
	} else {
		data, err := metaService.Download(ctx, URL)
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(data))
		if ret.Quantum, err = toolbox.ToInt(text); err != nil {
			return nil, fmt.Errorf("%w: %q in %v", scheduler.ErrInvalidQuantum, text, URL)
		}
	}
	ret.Limits = ret.Limits.WithDefaults()
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
