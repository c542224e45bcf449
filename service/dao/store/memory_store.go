package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/rrsched/service/dao"
)

// MemoryStore is a generic in-memory dao.Service keeping *T by the key
// returned from keySelector.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector func(*T) K
	less        func(a, b *T) bool
}

// NewMemoryStore creates a store, less orders List results when set.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, less func(a, b *T) bool) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
		less:        less,
	}
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key or dao.ErrNotFound.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record or returns dao.ErrNotFound.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns all stored records; parameters are left to wrapping DAOs.
func (s *MemoryStore[K, T]) List(_ context.Context, _ ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		out = append(out, v)
	}
	s.mu.RUnlock()
	if s.less != nil {
		sort.Slice(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	}
	return out, nil
}
