// Package louvre provides the extractor for records of the Louvre
// collections database (collections.louvre.fr JSON).
package louvre

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

// Extractor implements the Louvre collections JSON source.
type Extractor struct{}

// Ensure Extractor implements the interfaces
var (
	_ source.Extractor = (*Extractor)(nil)
	_ source.Detector  = (*Extractor)(nil)
)

// Name returns the source identifier.
func (e *Extractor) Name() hub.SourceID {
	return hub.SourceLouvre
}

// Description returns a human-readable source description.
func (e *Extractor) Description() string {
	return "Louvre collections database records (collections.louvre.fr JSON)"
}

// Extensions returns file extensions associated with this source.
func (e *Extractor) Extensions() []string {
	return []string{"json"}
}

// CanExtract returns true if the input looks like a Louvre record: a
// top-level arkId, or a top-level url on collections.louvre.fr. Other
// sources may cite Louvre URLs in their own fields.
func (e *Extractor) CanExtract(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}

	if gjson.GetBytes(peek, "arkId").Exists() {
		return true
	}
	url := gjson.GetBytes(peek, "url")
	return url.Type == gjson.String && strings.HasPrefix(url.Str, "https://collections.louvre.fr/")
}

// Extract converts one record to an intermediate record.
func (e *Extractor) Extract(doc []byte) (*hub.Record, error) {
	return Rules.Extract(doc)
}

func init() {
	source.Register(&Extractor{})
}
