package vocab

import (
	"context"
	"fmt"
	"strings"
)

// DefaultWikidataEndpoint is the Wikidata Query Service endpoint.
const DefaultWikidataEndpoint = "https://query.wikidata.org/sparql"

const wikidataQuery = `SELECT ?item WHERE {
    SERVICE wikibase:mwapi {
        bd:serviceParam wikibase:endpoint "www.wikidata.org";
                        wikibase:api "EntitySearch";
                        mwapi:search %s;
                        mwapi:language %s.
        ?item wikibase:apiOutputItem mwapi:item.
    }
} LIMIT 1`

// Wikidata looks labels up with the Wikidata entity search. It tries the
// whole label first, then each comma-separated part in turn.
type Wikidata struct {
	Client   *SPARQLClient
	Language string
}

// NewWikidata creates a Wikidata strategy over client. An empty language
// searches French labels.
func NewWikidata(client *SPARQLClient, language string) *Wikidata {
	if language == "" {
		language = "fr"
	}
	return &Wikidata{Client: client, Language: language}
}

// Name returns the strategy name.
func (w *Wikidata) Name() string {
	return StrategyWikidata
}

// Remote reports that the strategy calls the network.
func (w *Wikidata) Remote() bool {
	return true
}

// Lookup returns the first entity found for the label or one of its parts.
func (w *Wikidata) Lookup(ctx context.Context, q Query) (string, bool) {
	for _, candidate := range searchTerms(q.Label) {
		if ctx.Err() != nil {
			return "", false
		}
		uri, err := w.Client.SelectFirst(ctx, fmt.Sprintf(wikidataQuery, literal(candidate), literal(w.Language)), "item")
		if err == nil && uri != "" {
			return uri, true
		}
	}
	return "", false
}

// searchTerms returns the label followed by its comma-separated parts,
// trimmed, without blanks or repeats.
func searchTerms(label string) []string {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}

	terms := []string{label}
	seen := map[string]bool{label: true}
	for _, part := range strings.Split(label, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		terms = append(terms, part)
	}
	return terms
}
