package vocab

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
	"github.com/lehigh-university-libraries/museumwalk/metrics"
)

// Resolver runs the strategy chain for each lookup and memoises answers
// for the lifetime of the Resolver. It is safe for concurrent use.
type Resolver struct {
	tables  *mapping.Registry
	chain   []Strategy
	offline bool
	cached  bool

	mu    sync.RWMutex
	cache map[cacheKey]Result
	group singleflight.Group
}

type cacheKey struct {
	source   hub.SourceID
	category mapping.Category
	label    string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRemote appends remote strategies after the overrides, in order.
func WithRemote(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.chain = append(r.chain, strategies...)
	}
}

// WithOffline skips every remote strategy.
func WithOffline(offline bool) Option {
	return func(r *Resolver) {
		r.offline = offline
	}
}

// WithoutCache disables answer memoisation.
func WithoutCache() Option {
	return func(r *Resolver) {
		r.cached = false
	}
}

// New creates a Resolver whose chain starts with the override tables.
func New(tables *mapping.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		tables: tables,
		chain:  []Strategy{&Overrides{Tables: tables}},
		cached: true,
		cache:  make(map[cacheKey]Result),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strategies returns the names of the chain, in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.chain))
	for _, s := range r.chain {
		if r.offline && isRemote(s) {
			continue
		}
		names = append(names, s.Name())
	}
	return names
}

// Resolve returns the URI for a label. It never fails: unresolvable labels
// yield a sentinel URI.
func (r *Resolver) Resolve(ctx context.Context, source hub.SourceID, category mapping.Category, label string) string {
	return r.Lookup(ctx, Query{Source: source, Category: category, Label: label}).URI
}

// Lookup resolves q and reports which strategy answered.
func (r *Resolver) Lookup(ctx context.Context, q Query) Result {
	label := strings.TrimSpace(q.Label)
	if label == "" || label == hub.NotSpecified {
		metrics.RecordLookup(string(q.Source), string(q.Category), StrategySentinel)
		return Result{URI: mapping.NotSpecifiedURI, Strategy: StrategySentinel}
	}

	ct := r.tables.Category(q.Source, q.Category)
	q.Label = ct.Preprocess(label)

	if !r.cached {
		return r.run(ctx, q, ct)
	}

	key := cacheKey{source: q.Source, category: q.Category, label: mapping.Normalize(q.Label)}
	r.mu.RLock()
	res, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		metrics.CacheHits.Inc()
		return res
	}

	// The shared lookup ignores caller cancellation; each caller stops
	// waiting on its own context. Remote strategies keep their HTTP timeout.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(string(key.source)+"\x00"+string(key.category)+"\x00"+key.label, func() (any, error) {
		res := r.run(shared, q, ct)
		r.mu.Lock()
		r.cache[key] = res
		r.mu.Unlock()
		return res, nil
	})

	select {
	case out := <-ch:
		return out.Val.(Result)
	case <-ctx.Done():
		metrics.RecordLookup(string(q.Source), string(q.Category), StrategyFallback)
		return Result{URI: mapping.NotFoundURI, Strategy: StrategyFallback}
	}
}

func (r *Resolver) run(ctx context.Context, q Query, ct *mapping.CategoryTable) Result {
	localOnly := ct != nil && ct.LocalOnly

	for _, s := range r.chain {
		if isRemote(s) && (r.offline || localOnly) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		uri, ok := s.Lookup(ctx, q)
		if !ok || uri == "" {
			continue
		}

		slog.Debug("label resolved",
			"source", q.Source,
			"category", q.Category,
			"label", q.Label,
			"strategy", s.Name(),
			"uri", uri)
		metrics.RecordLookup(string(q.Source), string(q.Category), s.Name())
		return Result{URI: uri, Strategy: s.Name()}
	}

	slog.Debug("label not found",
		"source", q.Source,
		"category", q.Category,
		"label", q.Label,
		"localOnly", localOnly)
	metrics.RecordLookup(string(q.Source), string(q.Category), StrategyFallback)
	return Result{URI: mapping.NotFoundURI, Strategy: StrategyFallback}
}
