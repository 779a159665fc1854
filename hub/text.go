package hub

import (
	"encoding/json"
	"strings"
)

// Text is an optional free-text value. The zero value is absent.
//
// Absence and "explicitly unknown" are the same thing inside the pipeline;
// the NotSpecified literal only appears once a record is serialised.
type Text struct {
	Value string
	Valid bool
}

// TextOf wraps s, treating blank strings and the NotSpecified literal as absent.
func TextOf(s string) Text {
	t := strings.TrimSpace(s)
	if t == "" || t == NotSpecified {
		return Text{}
	}
	return Text{Value: t, Valid: true}
}

// Or returns the value, or def when absent.
func (t Text) Or(def string) string {
	if !t.Valid {
		return def
	}
	return t.Value
}

// Label returns the value, or NotSpecified when absent.
func (t Text) Label() string {
	return t.Or(NotSpecified)
}

// Ptr returns a pointer to the value, or nil when absent.
func (t Text) Ptr() *string {
	if !t.Valid {
		return nil
	}
	v := t.Value
	return &v
}

func (t Text) String() string {
	return t.Label()
}

// MarshalJSON encodes an absent Text as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return marshal(t.Value)
}

// UnmarshalJSON accepts a string or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*t = Text{}
		return nil
	}
	*t = TextOf(*s)
	return nil
}

// Texts wraps each string with TextOf, dropping absent values.
func Texts(values ...string) []Text {
	out := make([]Text, 0, len(values))
	for _, v := range values {
		if t := TextOf(v); t.Valid {
			out = append(out, t)
		}
	}
	return out
}
