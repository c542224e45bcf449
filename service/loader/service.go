// Package loader enumerates a process directory into program sources.
package loader

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/rrsched/model/program"
)

// Service reads process sources through afs
type Service struct {
	fs afs.Service
}

// Load returns every file directly under baseURL as a source, ordered by
// file name. Subdirectories are skipped.
func (s *Service) Load(ctx context.Context, baseURL string) ([]*program.Source, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("process location was empty")
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	objects, err := s.fs.List(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes in %s: %w", baseURL, err)
	}
	var files = make([]string, 0, len(objects))
	var byName = make(map[string]string, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		files = append(files, object.Name())
		byName[object.Name()] = object.URL()
	}
	sort.Strings(files)

	var ret = make([]*program.Source, 0, len(files))
	for _, name := range files {
		data, err := s.fs.DownloadWithURL(ctx, byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read process %s: %w", name, err)
		}
		ret = append(ret, program.NewSource(name, data))
	}
	return ret, nil
}

// New creates a loader, a nil fs uses afs.New()
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
