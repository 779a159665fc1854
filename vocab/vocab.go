// Package vocab resolves free-text labels to controlled-vocabulary URIs.
//
// A lookup runs an ordered chain of strategies: the curated override tables
// first, then the Getty and Wikidata SPARQL endpoints. The first strategy
// to answer wins; when none does, a sentinel URI is returned. Remote
// failures are never surfaced to callers.
package vocab

import (
	"context"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
)

// Strategy names recorded on a Result.
const (
	StrategySentinel  = "sentinel"
	StrategyOverrides = "overrides"
	StrategyGetty     = "getty"
	StrategyWikidata  = "wikidata"
	StrategyFallback  = "fallback"
)

// Query is one lookup request.
type Query struct {
	Source   hub.SourceID
	Category mapping.Category
	Label    string
}

// Result is the answer to a Query.
type Result struct {
	URI string

	// Strategy names what produced URI.
	Strategy string
}

// Strategy is one link of the resolution chain.
type Strategy interface {
	Name() string

	// Lookup returns a URI for q, or ok=false when the strategy has no
	// answer. Strategies must not fail: errors count as no answer.
	Lookup(ctx context.Context, q Query) (uri string, ok bool)
}

// Remote is implemented by strategies that call out over the network.
// They are skipped for local-only categories and in offline mode.
type Remote interface {
	Remote() bool
}

func isRemote(s Strategy) bool {
	r, ok := s.(Remote)
	return ok && r.Remote()
}
