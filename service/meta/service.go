// Package meta downloads graph and configuration documents through afs.
// Configuration loaded with Load has ${env.KEY} references expanded; raw
// downloads are returned as stored.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service resolves locations against a base URL and downloads them
type Service struct {
	fs      afs.Service
	baseURL string
}

// URL resolves location against the base URL
func (s *Service) URL(location string) string {
	if s.baseURL == "" || !url.IsRelative(location) {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download returns the content at location unchanged
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return data, nil
}

// Load decodes the configuration document at location into target after
// expanding environment references. JSON documents are decoded with
// json.Number preserved; anything else is decoded as YAML.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	return Decode(path.Ext(location), []byte(expandEnv(string(data))), target)
}

// Decode decodes data by extension
func Decode(ext string, data []byte, target interface{}) error {
	if strings.EqualFold(ext, ".json") {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		return decoder.Decode(target)
	}
	return yaml.Unmarshal(data, target)
}

// New creates a meta service
func New(fs afs.Service, baseURL string) *Service {
	return &Service{fs: fs, baseURL: baseURL}
}
