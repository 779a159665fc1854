// Package mapping provides the curated vocabulary override tables consulted
// before any remote lookup.
//
// A table belongs to one source and holds, per category, an ordered list of
// entries. An entry matches when its normalised Match text is a substring of
// the normalised label; the first matching entry wins.
package mapping

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

// Category is the semantic role a label plays in a Linked Art record.
type Category string

const (
	CategoryTookPlaceAt               Category = "took_place_at"
	CategoryCarriedOutBy              Category = "carried_out_by"
	CategoryMemberOf                  Category = "member_of"
	CategoryMadeOf                    Category = "made_of"
	CategoryUnit                      Category = "unit"
	CategoryCurrentOwner              Category = "current_owner"
	CategoryCurrentPermanentCustodian Category = "current_permanent_custodian"
	CategoryCurrentCustodian          Category = "current_custodian"
	CategoryCurrentLocation           Category = "current_location"
	CategoryTransferredTitleFrom      Category = "transferred_title_from"
	CategoryExhibition                Category = "exhibition"
)

// Categories lists every category in record order.
func Categories() []Category {
	return []Category{
		CategoryTookPlaceAt,
		CategoryCarriedOutBy,
		CategoryMemberOf,
		CategoryMadeOf,
		CategoryUnit,
		CategoryCurrentOwner,
		CategoryCurrentPermanentCustodian,
		CategoryCurrentCustodian,
		CategoryCurrentLocation,
		CategoryTransferredTitleFrom,
		CategoryExhibition,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Sentinel names one of the placeholder URIs.
type Sentinel string

const (
	SentinelNotSpecified Sentinel = "not_specified"
	SentinelNotFound     Sentinel = "not_found"
	SentinelNotExposed   Sentinel = "not_exposed"
)

// Sentinel URIs stand in for references that could not be, or must not be,
// resolved to a real authority.
const (
	NotSpecifiedURI = "http://example.org/not_specified"
	NotFoundURI     = "http://example.org/not_found"
	NotExposedURI   = "http://example.org/not_exposed"
)

// URI returns the placeholder URI for s.
func (s Sentinel) URI() string {
	switch s {
	case SentinelNotSpecified:
		return NotSpecifiedURI
	case SentinelNotFound:
		return NotFoundURI
	case SentinelNotExposed:
		return NotExposedURI
	}
	return ""
}

// Table is the override table of one source.
type Table struct {
	// Source is the source the table applies to
	Source hub.SourceID `yaml:"source" json:"source" validate:"required,oneof=agorha louvre paris_musees"`

	// Version identifies the curation round (e.g., "2025.1")
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Categories maps a category to its entries
	Categories map[Category]*CategoryTable `yaml:"categories" json:"categories" validate:"dive,keys,oneof=took_place_at carried_out_by member_of made_of unit current_owner current_permanent_custodian current_custodian current_location transferred_title_from exhibition,endkeys"`
}

// VersionedName returns the table name with version (e.g., "louvre@2025.1").
func (t *Table) VersionedName() string {
	if t.Version != "" {
		return string(t.Source) + "@" + t.Version
	}
	return string(t.Source)
}

// Category returns the entries for c, or nil.
func (t *Table) Category(c Category) *CategoryTable {
	if t == nil {
		return nil
	}
	return t.Categories[c]
}

// CategoryTable holds the overrides of one category.
type CategoryTable struct {
	// Extract is a regular expression applied to a label before matching;
	// its first group replaces the label when it matches.
	Extract string `yaml:"extract,omitempty" json:"extract,omitempty"`

	// LocalOnly forbids remote lookups for the category: a label missing
	// from the table is not found.
	LocalOnly bool `yaml:"local_only,omitempty" json:"local_only,omitempty"`

	Entries []Entry `yaml:"entries" json:"entries" validate:"dive"`

	extract *regexp.Regexp
}

// Entry maps a label fragment to a URI or a sentinel.
type Entry struct {
	Match    string   `yaml:"match" json:"match" validate:"required"`
	URI      string   `yaml:"uri,omitempty" json:"uri,omitempty" validate:"omitempty,url"`
	Sentinel Sentinel `yaml:"sentinel,omitempty" json:"sentinel,omitempty" validate:"omitempty,oneof=not_specified not_found not_exposed"`

	key string
}

// Target returns the URI the entry resolves to.
func (e Entry) Target() string {
	if e.Sentinel != "" {
		return e.Sentinel.URI()
	}
	return e.URI
}

// Preprocess applies the category's Extract pattern to label. Labels that
// do not match are returned unchanged.
func (c *CategoryTable) Preprocess(label string) string {
	if c == nil || c.extract == nil {
		return label
	}
	m := c.extract.FindStringSubmatch(label)
	if len(m) < 2 {
		return label
	}
	if s := strings.TrimSpace(m[1]); s != "" {
		return s
	}
	return label
}

// Lookup returns the first entry matching label.
func (c *CategoryTable) Lookup(label string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	key := Normalize(label)
	if key == "" {
		return Entry{}, false
	}
	for _, e := range c.Entries {
		k := e.key
		if k == "" {
			k = Normalize(e.Match)
		}
		if k != "" && strings.Contains(key, k) {
			return e, true
		}
	}
	return Entry{}, false
}

// Normalize prepares text for override matching: trimmed, lowercased and
// NFC-composed, so "Matériau" typed with a combining accent still matches.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}
