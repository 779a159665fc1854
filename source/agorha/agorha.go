// Package agorha provides the extractor for Agorha (INHA) notices, published
// as JSON-LD using CIDOC-CRM properties.
package agorha

import (
	"bytes"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

// Extractor implements the Agorha JSON-LD source.
type Extractor struct{}

// Ensure Extractor implements the interfaces
var (
	_ source.Extractor = (*Extractor)(nil)
	_ source.Detector  = (*Extractor)(nil)
)

// Name returns the source identifier.
func (e *Extractor) Name() hub.SourceID {
	return hub.SourceAgorha
}

// Description returns a human-readable source description.
func (e *Extractor) Description() string {
	return "Agorha (INHA) notices, JSON-LD CIDOC-CRM"
}

// Extensions returns file extensions associated with this source.
func (e *Extractor) Extensions() []string {
	return []string{"jsonld"}
}

// CanExtract returns true if the input looks like an Agorha notice.
func (e *Extractor) CanExtract(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}

	patterns := [][]byte{
		[]byte(`"crm:P102_has_title"`),
		[]byte(`"crm:P108i_was_produced_by"`),
		[]byte(`agorha.inha.fr`),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

// Extract converts one notice to an intermediate record.
func (e *Extractor) Extract(doc []byte) (*hub.Record, error) {
	return Rules.Extract(doc)
}

func init() {
	source.Register(&Extractor{})
}
