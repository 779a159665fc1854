package value

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Literal extracts the text of a JSON node.
//
// Strings are trimmed, numbers are formatted without trailing zeros and
// JSON-LD value objects ({"@value": ...}) are unwrapped. Objects without
// @value, arrays and null yield "".
func Literal(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return Number(r.Num)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.JSON:
		if r.IsObject() {
			if v := r.Get(gjson.Escape("@value")); v.Exists() {
				return Literal(v)
			}
		}
	}
	return ""
}

// Present reports whether a node exists and carries something: a non-blank
// string, a number or boolean, a non-empty object or a non-empty list.
func Present(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return strings.TrimSpace(r.Str) != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	}
	return r.Exists()
}

// Elements returns the elements of a list node, or the node itself as a
// one-element list. Missing and null nodes yield nil.
func Elements(r gjson.Result) []gjson.Result {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if r.IsArray() {
		return r.Array()
	}
	return []gjson.Result{r}
}

// Parse validates raw JSON and returns its root node.
func Parse(data []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(data), true
}
