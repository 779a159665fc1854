// Package parismusees provides the extractor for Paris Musées collection
// entities, as returned by the Paris Musées GraphQL API (NodeOeuvre).
package parismusees

import (
	"bytes"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

// Extractor implements the Paris Musées GraphQL entity source.
type Extractor struct{}

// Ensure Extractor implements the interfaces
var (
	_ source.Extractor = (*Extractor)(nil)
	_ source.Detector  = (*Extractor)(nil)
)

// Name returns the source identifier.
func (e *Extractor) Name() hub.SourceID {
	return hub.SourceParisMusees
}

// Description returns a human-readable source description.
func (e *Extractor) Description() string {
	return "Paris Musées collection entities (GraphQL NodeOeuvre JSON)"
}

// Extensions returns file extensions associated with this source.
func (e *Extractor) Extensions() []string {
	return []string{"json"}
}

// CanExtract returns true if the input looks like a Paris Musées entity.
func (e *Extractor) CanExtract(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}

	patterns := [][]byte{
		[]byte(`"absolutePath"`),
		[]byte(`"fieldOeuvre`),
		[]byte(`"queryFieldMusee"`),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

// Extract converts one entity to an intermediate record.
func (e *Extractor) Extract(doc []byte) (*hub.Record, error) {
	return Rules.Extract(doc)
}

func init() {
	source.Register(&Extractor{})
}
