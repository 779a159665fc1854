package source

import (
	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/value"
)

// Transform post-processes an extracted string.
type Transform func(string) string

// Paths compiles path expressions for a rule table. It panics on a bad
// expression, so tables fail at init rather than per document.
func Paths(exprs ...string) []value.Path {
	out := make([]value.Path, len(exprs))
	for i, e := range exprs {
		out[i] = value.MustPath(e)
	}
	return out
}

// Rule fills one single-valued record field. Candidate paths are tried in
// order and the first non-empty text wins. A non-empty Const is used as-is
// and no path is read. Read replaces the paths for fields whose lookup
// cannot be written as a path.
type Rule struct {
	Field     hub.Field
	Paths     []value.Path
	Const     string
	Read      func(doc gjson.Result) string
	Transform Transform
}

// At is shorthand for a Rule reading field from the first matching path.
func At(field hub.Field, exprs ...string) Rule {
	return Rule{Field: field, Paths: Paths(exprs...)}
}

// Value evaluates the rule against a document.
func (r Rule) Value(doc gjson.Result) hub.Text {
	if r.Const != "" {
		return hub.TextOf(r.Const)
	}
	if r.Read != nil {
		s := r.Read(doc)
		if s != "" && r.Transform != nil {
			s = r.Transform(s)
		}
		return hub.TextOf(s)
	}
	for _, p := range r.Paths {
		s := p.Text(doc)
		if s != "" && r.Transform != nil {
			s = r.Transform(s)
		}
		if t := hub.TextOf(s); t.Valid {
			return t
		}
	}
	return hub.Text{}
}

// Apply stores the rule's value on rec.
func (r Rule) Apply(doc gjson.Result, rec *hub.Record) {
	rec.Set(r.Field, r.Value(doc))
}

// ListRule fills the materials list.
type ListRule struct {
	Path value.Path

	// Placeholder records a single unknown entry when the path yields no
	// value, instead of leaving the list empty.
	Placeholder bool

	// Field restricts the placeholder to documents where this node is
	// absent. A present node that yields no value leaves the list empty.
	Field value.Path

	Transform Transform
}

// Values evaluates the rule against a document.
func (l ListRule) Values(doc gjson.Result) []hub.Text {
	out := make([]hub.Text, 0)
	for _, s := range l.Path.Texts(doc) {
		if l.Transform != nil {
			s = l.Transform(s)
		}
		if t := hub.TextOf(s); t.Valid {
			out = append(out, t)
		}
	}
	if len(out) == 0 && l.Placeholder && (l.Field.IsZero() || !l.Field.Present(doc)) {
		out = append(out, hub.Text{})
	}
	return out
}

// Apply stores the list on rec.
func (l ListRule) Apply(doc gjson.Result, rec *hub.Record) {
	if l.Path.IsZero() {
		return
	}
	rec.Materials = l.Values(doc)
}

// DimensionRule assigns measurement entries to axes by their position.
type DimensionRule struct {
	// Entries reaches every dimension entry, in source order.
	Entries value.Path

	// Value and Unit are evaluated relative to an entry. A zero Unit
	// leaves the unit to default.
	Value value.Path
	Unit  value.Path

	// Axes gives the role of the entry at each position.
	Axes []hub.Axis

	// Compact drops entries without a value before positions are counted.
	Compact bool
}

// Apply stores the dimensions on rec.
func (d DimensionRule) Apply(doc gjson.Result, rec *hub.Record) {
	if d.Entries.IsZero() {
		return
	}

	entries := d.Entries.Eval(doc)
	if d.Compact {
		kept := entries[:0:0]
		for _, e := range entries {
			if d.Value.Text(e) != "" {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	for i, axis := range d.Axes {
		if i >= len(entries) {
			break
		}
		v := hub.TextOf(d.Value.Text(entries[i]))
		var unit hub.Text
		if !d.Unit.IsZero() {
			unit = hub.TextOf(d.Unit.Text(entries[i]))
		}
		rec.SetDimension(axis, v, unit)
	}
}

// TransferRule creates the ownership-transfer block when When reaches
// something, then fills it with Rules.
type TransferRule struct {
	When  value.Path
	Rules []Rule
}

// Apply stores the transfer on rec, or leaves it nil.
func (t *TransferRule) Apply(doc gjson.Result, rec *hub.Record) {
	if t == nil || !t.When.Present(doc) {
		return
	}
	rec.ChangedOwnershipThrough = &hub.Transfer{}
	for _, r := range t.Rules {
		r.Apply(doc, rec)
	}
}

// ExtraRule copies a source field with no pivot slot into Record.Extra.
type ExtraRule struct {
	Key  string
	Path value.Path

	// Many keeps every value as a list instead of the first one.
	Many bool
}

// Apply stores the extra value on rec when the path yields one.
func (e ExtraRule) Apply(doc gjson.Result, rec *hub.Record) {
	if e.Many {
		texts := e.Path.Texts(doc)
		if len(texts) == 0 {
			return
		}
		list := make([]any, len(texts))
		for i, s := range texts {
			list[i] = s
		}
		rec.SetExtra(e.Key, list)
		return
	}
	if s := e.Path.Text(doc); s != "" {
		rec.SetExtra(e.Key, s)
	}
}

// Ruleset is the complete extraction table of one source.
type Ruleset struct {
	Source     hub.SourceID
	Rules      []Rule
	Materials  ListRule
	Dimensions DimensionRule
	Transfer   *TransferRule
	Extras     []ExtraRule
}

// Apply builds a record from a parsed document. It never fails; missing
// fields stay absent.
func (rs *Ruleset) Apply(doc gjson.Result) *hub.Record {
	rec := hub.NewRecord(rs.Source)
	for _, r := range rs.Rules {
		r.Apply(doc, rec)
	}
	rs.Materials.Apply(doc, rec)
	rs.Dimensions.Apply(doc, rec)
	rs.Transfer.Apply(doc, rec)
	for _, e := range rs.Extras {
		e.Apply(doc, rec)
	}
	return rec
}

// Extract parses raw JSON and applies the ruleset, then checks the
// mandatory fields.
func (rs *Ruleset) Extract(data []byte) (*hub.Record, error) {
	doc, ok := value.Parse(data)
	if !ok {
		return nil, &hub.MalformedRecordError{Source: rs.Source, Field: "document", Reason: "invalid JSON"}
	}
	if !doc.IsObject() {
		return nil, &hub.MalformedRecordError{Source: rs.Source, Field: "document", Reason: "not a JSON object"}
	}

	rec := rs.Apply(doc)
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
