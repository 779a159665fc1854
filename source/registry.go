package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

// ErrUnknownSource is returned when no extractor is registered for a name.
var ErrUnknownSource = errors.New("unknown source")

// Registry holds registered extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[hub.SourceID]Extractor
}

// DefaultRegistry is the global extractor registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[hub.SourceID]Extractor),
	}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Name()] = e
}

// Get retrieves an extractor by source name. Names are case-insensitive and
// "paris-musees" is accepted for "paris_musees".
func (r *Registry) Get(name string) (Extractor, error) {
	id := hub.SourceID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))

	r.mu.RLock()
	e, ok := r.extractors[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return e, nil
}

// List returns all registered extractors sorted by name.
func (r *Registry) List() []Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Extractor, 0, len(r.extractors))
	for _, e := range r.extractors {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Detect picks the extractor for a document from its extension and content.
// Content detection breaks ties between sources sharing an extension.
func (r *Registry) Detect(filename string, peek []byte) (Extractor, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var byExt []Extractor
	for _, e := range r.List() {
		for _, eext := range e.Extensions() {
			if ext == eext {
				byExt = append(byExt, e)
			}
		}
	}
	if len(byExt) == 1 {
		return byExt[0], nil
	}

	candidates := byExt
	if len(candidates) == 0 {
		candidates = r.List()
	}
	for _, e := range candidates {
		if d, ok := e.(Detector); ok && d.CanExtract(peek) {
			return e, nil
		}
	}

	return nil, fmt.Errorf("%w: could not detect source for %s", ErrUnknownSource, filename)
}

// Register adds an extractor to the default registry.
func Register(e Extractor) {
	DefaultRegistry.Register(e)
}

// Get retrieves an extractor from the default registry.
func Get(name string) (Extractor, error) {
	return DefaultRegistry.Get(name)
}

// List returns the extractors of the default registry.
func List() []Extractor {
	return DefaultRegistry.List()
}

// Detect detects the source of a document using the default registry.
func Detect(filename string, peek []byte) (Extractor, error) {
	return DefaultRegistry.Detect(filename, peek)
}
