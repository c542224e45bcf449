package fs

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/rrsched/model/message"
	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/service/dao"
	"github.com/viant/rrsched/service/dao/criteria"
)

var artifactName = regexp.MustCompile(`^log\d{2,}\.txt$`)

// Service stores report artifacts as log<QQ>.txt files under baseURL
type Service struct {
	baseURL string
	fs      afs.Service
	catalog *message.Catalog
	mu      sync.RWMutex
}

var _ dao.Service[int, report.Report] = (*Service)(nil)

// Save renders aReport in its own locale, falling back to the store catalog,
// and uploads it, replacing any previous artifact
func (s *Service) Save(ctx context.Context, aReport *report.Report) error {
	if aReport == nil {
		return dao.ErrNilEntity
	}
	if aReport.Quantum <= 0 {
		return fmt.Errorf("%w: quantum %d", dao.ErrInvalidID, aReport.Quantum)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalog
	if aReport.Locale != "" {
		if localized, ok := message.Lookup(aReport.Locale); ok {
			catalog = localized
		}
	}
	URL := s.URL(aReport.Quantum)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(aReport.Text(catalog))); err != nil {
		return fmt.Errorf("failed to save report to %s: %w", URL, err)
	}
	return nil
}

// Load reads and parses the artifact for quantum
func (s *Service) Load(ctx context.Context, quantum int) (*report.Report, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: quantum %d", dao.ErrInvalidID, quantum)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.URL(quantum)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if report exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, URL)
	}
	return s.load(ctx, URL)
}

func (s *Service) load(ctx context.Context, URL string) (*report.Report, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", URL, err)
	}
	ret, err := report.Parse(data, s.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", URL, err)
	}
	return ret, nil
}

// Delete removes the artifact for quantum
func (s *Service) Delete(ctx context.Context, quantum int) error {
	if quantum <= 0 {
		return fmt.Errorf("%w: quantum %d", dao.ErrInvalidID, quantum)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.URL(quantum)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if report exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", dao.ErrNotFound, URL)
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", URL, err)
	}
	return nil
}

// List returns parsed artifacts matching parameters ordered by quantum
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	var ret []*report.Report
	for _, object := range objects {
		if object.IsDir() || !artifactName.MatchString(object.Name()) {
			continue
		}
		aReport, err := s.load(ctx, object.URL())
		if err != nil {
			return nil, err
		}
		if criteria.Match(aReport, parameters) {
			ret = append(ret, aReport)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Quantum < ret[j].Quantum })
	return ret, nil
}

// URL returns the artifact location for quantum
func (s *Service) URL(quantum int) string {
	return url.Join(s.baseURL, report.FileName(quantum))
}

// New creates a file report store, creating baseURL when missing
func New(ctx context.Context, baseURL string, opts ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL was empty")
	}
	ret := &Service{
		baseURL: url.Normalize(baseURL, file.Scheme),
		fs:      afs.New(),
		catalog: message.English(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	exists, err := ret.fs.Exists(ctx, ret.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check report location %s: %w", ret.baseURL, err)
	}
	if !exists {
		if err := ret.fs.Create(ctx, ret.baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create report location %s: %w", ret.baseURL, err)
		}
	}
	return ret, nil
}
