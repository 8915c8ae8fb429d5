package surface

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manifest is the on-disk description of a template document: canvas size
// plus the layer tree. Template folders ship one manifest per document,
// named after the document file with a .json extension.
type Manifest struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Layers []LayerNode `json:"layers"`
}

// ReadManifest parses a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}
	if len(m.Layers) == 0 {
		return nil, fmt.Errorf("manifest %s has no layers", filepath.Base(path))
	}
	return &m, nil
}

// ManifestLoader opens documents described by manifest files next to the
// template documents themselves: a request for normal.psd is served by
// normal.json in the same directory. Parsed manifests are cached, so a
// batch reuses one parse per template file.
type ManifestLoader struct {
	// Dir is the templates directory Ping probes for availability.
	Dir string

	mu    sync.Mutex
	cache map[string]*Manifest
}

// Ping reports whether the templates directory is reachable.
func (ld *ManifestLoader) Ping() error {
	if ld.Dir == "" {
		return nil
	}
	info, err := os.Stat(ld.Dir)
	if err != nil {
		return fmt.Errorf("%w: templates directory %s: %v", ErrUnavailable, ld.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnavailable, ld.Dir)
	}
	return nil
}

// Load opens the manifest belonging to the document at path and builds a
// document from it.
func (ld *ManifestLoader) Load(path string) (Document, error) {
	manifestPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"

	ld.mu.Lock()
	m, ok := ld.cache[manifestPath]
	ld.mu.Unlock()
	if !ok {
		var err error
		m, err = ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		ld.mu.Lock()
		if ld.cache == nil {
			ld.cache = make(map[string]*Manifest)
		}
		ld.cache[manifestPath] = m
		ld.mu.Unlock()
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewDocument(name, m.Width, m.Height, m.Layers), nil
}
