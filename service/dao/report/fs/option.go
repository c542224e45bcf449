package fs

import (
	"github.com/viant/afs"
	"github.com/viant/rrsched/model/message"
)

type Option func(s *Service)

// WithCatalog sets the catalog used to render and parse report artifacts
func WithCatalog(catalog *message.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		if fs != nil {
			s.fs = fs
		}
	}
}
