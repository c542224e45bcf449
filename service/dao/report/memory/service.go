package memory

import (
	"context"

	"github.com/viant/rrsched/model/report"
	"github.com/viant/rrsched/service/dao"
	"github.com/viant/rrsched/service/dao/criteria"
	"github.com/viant/rrsched/service/dao/store"
)

// Service keeps reports in memory keyed by quantum, mirroring the one
// artifact per quantum layout of the file store.
type Service struct {
	*store.MemoryStore[int, report.Report]
}

var _ dao.Service[int, report.Report] = (*Service)(nil)

// Save stores aReport
func (s *Service) Save(ctx context.Context, aReport *report.Report) error {
	if aReport == nil {
		return dao.ErrNilEntity
	}
	if aReport.Quantum <= 0 {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, aReport)
}

// Load returns the report for quantum
func (s *Service) Load(ctx context.Context, quantum int) (*report.Report, error) {
	if quantum <= 0 {
		return nil, dao.ErrInvalidID
	}
	return s.MemoryStore.Load(ctx, quantum)
}

// Delete removes the report for quantum
func (s *Service) Delete(ctx context.Context, quantum int) error {
	if quantum <= 0 {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Delete(ctx, quantum)
}

// List returns reports matching parameters ordered by quantum
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*report.Report, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	var ret []*report.Report
	for _, aReport := range all {
		if criteria.Match(aReport, parameters) {
			ret = append(ret, aReport)
		}
	}
	return ret, nil
}

// New creates an in-memory report store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[int, report.Report](
			func(r *report.Report) int { return r.Quantum },
			func(a, b *report.Report) bool { return a.Quantum < b.Quantum },
		),
	}
}
