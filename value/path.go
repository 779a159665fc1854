package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Path is a compiled navigation path through a source document.
//
// A path is a "/"-separated list of keys. Each key may end in one selector:
//
//	key[n]   element n of the list (a non-list node counts as a one-element
//	         list); negative n counts from the end
//	key[n?]  element n if the node is a list, otherwise the node itself
//	key[*]   every element (a non-list node counts as a one-element list)
//
// A plain key applied to a list reaches nothing. Keys are matched
// literally, so "crm:P4_has_time-span" and "@id" need no escaping.
type Path struct {
	raw   string
	steps []step
}

type selector int

const (
	selNone selector = iota
	selIndex
	selIndexOrSelf
	selAll
)

type step struct {
	key   string
	sel   selector
	index int
}

// ParsePath compiles a path expression.
func ParsePath(expr string) (Path, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Path{}, fmt.Errorf("empty path")
	}

	parts := strings.Split(expr, "/")
	steps := make([]step, 0, len(parts))
	for _, part := range parts {
		s, err := parseStep(part)
		if err != nil {
			return Path{}, fmt.Errorf("path %q: %w", expr, err)
		}
		steps = append(steps, s)
	}
	return Path{raw: expr, steps: steps}, nil
}

// MustPath is like ParsePath but panics on error. It is meant for rule
// tables declared as package variables.
func MustPath(expr string) Path {
	p, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseStep(part string) (step, error) {
	if part == "" {
		return step{}, fmt.Errorf("empty key")
	}

	open := strings.LastIndex(part, "[")
	if open < 0 || !strings.HasSuffix(part, "]") {
		return step{key: part}, nil
	}

	key := part[:open]
	if key == "" {
		return step{}, fmt.Errorf("selector without key in %q", part)
	}
	arg := part[open+1 : len(part)-1]

	switch {
	case arg == "*":
		return step{key: key, sel: selAll}, nil
	case strings.HasSuffix(arg, "?"):
		n, err := strconv.Atoi(strings.TrimSuffix(arg, "?"))
		if err != nil {
			return step{}, fmt.Errorf("bad index in %q", part)
		}
		return step{key: key, sel: selIndexOrSelf, index: n}, nil
	default:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return step{}, fmt.Errorf("bad index in %q", part)
		}
		return step{key: key, sel: selIndex, index: n}, nil
	}
}

func (p Path) String() string {
	return p.raw
}

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool {
	return len(p.steps) == 0
}

// Eval returns every node the path reaches, in document order.
func (p Path) Eval(doc gjson.Result) []gjson.Result {
	if p.IsZero() {
		return nil
	}

	current := []gjson.Result{doc}
	for _, s := range p.steps {
		next := make([]gjson.Result, 0, len(current))
		for _, node := range current {
			next = append(next, s.apply(node)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// First returns the first node the path reaches, or a missing result.
func (p Path) First(doc gjson.Result) gjson.Result {
	nodes := p.Eval(doc)
	if len(nodes) == 0 {
		return gjson.Result{}
	}
	return nodes[0]
}

// Text returns the first non-empty literal the path reaches.
func (p Path) Text(doc gjson.Result) string {
	for _, node := range p.Eval(doc) {
		if s := Literal(node); s != "" {
			return s
		}
	}
	return ""
}

// Texts returns every non-empty literal the path reaches.
func (p Path) Texts(doc gjson.Result) []string {
	var out []string
	for _, node := range p.Eval(doc) {
		if s := Literal(node); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Present reports whether the path reaches a node carrying something.
func (p Path) Present(doc gjson.Result) bool {
	for _, node := range p.Eval(doc) {
		if Present(node) {
			return true
		}
	}
	return false
}

func (s step) apply(node gjson.Result) []gjson.Result {
	if !node.IsObject() {
		return nil
	}
	child := node.Get(gjson.Escape(s.key))
	if !child.Exists() || child.Type == gjson.Null {
		return nil
	}

	switch s.sel {
	case selIndex:
		return pick(Elements(child), s.index)
	case selIndexOrSelf:
		if child.IsArray() {
			return pick(child.Array(), s.index)
		}
		return []gjson.Result{child}
	case selAll:
		return Elements(child)
	}

	return []gjson.Result{child}
}

func pick(items []gjson.Result, i int) []gjson.Result {
	if i < 0 {
		i += len(items)
	}
	if i < 0 || i >= len(items) {
		return nil
	}
	if items[i].Type == gjson.Null {
		return nil
	}
	return []gjson.Result{items[i]}
}
