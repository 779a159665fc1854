// Package source defines the interface for museum source extractors.
package source

import (
	"github.com/lehigh-university-libraries/museumwalk/hub"
)

// Extractor turns one raw source document into an intermediate record.
type Extractor interface {
	// Name returns the source identifier (e.g., "agorha", "louvre")
	Name() hub.SourceID

	// Description returns a human-readable source description
	Description() string

	// Extensions returns file extensions the source publishes documents with
	Extensions() []string

	// Extract parses one document. It fails with a *hub.MalformedRecordError
	// when the document is not JSON or lacks a mandatory field; missing
	// optional fields never fail.
	Extract(doc []byte) (*hub.Record, error)
}

// Detector is implemented by extractors that can recognise their own
// documents from content.
type Detector interface {
	CanExtract(peek []byte) bool
}
