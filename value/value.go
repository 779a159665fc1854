// Package value provides primitives for extracting values from the
// irregular JSON documents museum sources publish.
//
// These helpers solve common problems:
//   - Type coercion (number 1750 → "1750", 12.50 → "12.5")
//   - Null/empty handling
//   - JSON-LD literal unwrapping ({"@value": "bronze"} → "bronze")
//   - Nodes that are sometimes a scalar and sometimes a list
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/museumwalk/helpers"
)

// Number formats a JSON number the way museums write it: integral values
// without a decimal point, others without trailing zeros.
func Number(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TextOption configures text cleaning.
type TextOption func(*textConfig)

type textConfig struct {
	stripHTML          bool
	collapseWhitespace bool
}

// WithStripHTML removes markup and decodes entities.
func WithStripHTML() TextOption {
	return func(c *textConfig) {
		c.stripHTML = true
	}
}

// WithCollapseWhitespace normalizes whitespace to single spaces.
func WithCollapseWhitespace() TextOption {
	return func(c *textConfig) {
		c.collapseWhitespace = true
	}
}

// Clean applies text options and trims the result.
func Clean(s string, opts ...TextOption) string {
	cfg := &textConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	switch {
	case cfg.stripHTML:
		// StripHTML already collapses whitespace.
		return helpers.StripHTML(s)
	case cfg.collapseWhitespace:
		return helpers.NormalizeWhitespace(s)
	}
	return strings.TrimSpace(s)
}
