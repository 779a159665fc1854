package vocab

import (
	"context"

	"github.com/lehigh-university-libraries/museumwalk/mapping"
)

// Overrides answers from the curated override tables.
type Overrides struct {
	Tables *mapping.Registry
}

// Name returns the strategy name.
func (o *Overrides) Name() string {
	return StrategyOverrides
}

// Lookup returns the URI of the first entry matching q.Label.
func (o *Overrides) Lookup(_ context.Context, q Query) (string, bool) {
	if o.Tables == nil {
		return "", false
	}
	e, ok := o.Tables.Category(q.Source, q.Category).Lookup(q.Label)
	if !ok {
		return "", false
	}
	return e.Target(), true
}
