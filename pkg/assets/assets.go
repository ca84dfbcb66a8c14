// Package assets supplies named binary resources to type handlers.
//
// A Provider is installed on a build.Builder and handed through to handlers
// that need external data (images, fonts, fixtures) during instance
// creation or update. The reconciliation core never interprets resource
// contents.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a provider has no resource under the
// requested name.
var ErrNotFound = errors.New("assets: resource not found")

// Provider resolves a resource name to its raw bytes.
type Provider interface {
	Resource(name string) ([]byte, error)
}

// MapProvider serves resources from an in-memory map. Useful for tests and
// embedded data.
type MapProvider map[string][]byte

// Resource returns the named entry or ErrNotFound.
func (p MapProvider) Resource(name string) ([]byte, error) {
	data, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return data, nil
}

// DirProvider serves resources from files under a root directory. Names
// are slash-separated relative paths; names escaping the root are
// rejected.
type DirProvider struct {
	root string
}

// NewDirProvider returns a provider rooted at dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{root: dir}
}

// Resource reads the named file below the provider's root. Missing files
// map to ErrNotFound.
func (p *DirProvider) Resource(name string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("assets: name %q escapes provider root", name)
	}
	data, err := os.ReadFile(filepath.Join(p.root, clean))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("assets: read %q: %w", name, err)
	}
	return data, nil
}
