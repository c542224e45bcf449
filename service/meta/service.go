// Package meta loads configuration resources through afs.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service downloads resources and expands ${env.KEY} expressions in them
type Service struct {
	fs afs.Service
}

// Download returns the expanded content of URL
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	URL = url.Normalize(URL, file.Scheme)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return []byte(ExpandEnv(string(data))), nil
}

// Load decodes URL into target, JSON for .json resources and YAML otherwise
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.Download(ctx, URL)
	if err != nil {
		return err
	}
	if IsJSON(URL) {
		err = json.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return nil
}

// IsStructured reports whether URL names a YAML or JSON resource
func IsStructured(URL string) bool {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// IsJSON reports whether URL names a JSON resource
func IsJSON(URL string) bool {
	return strings.ToLower(path.Ext(URL)) == ".json"
}

// New creates a meta service, a nil fs uses afs.New()
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
