package vocab

import (
	"context"
	"fmt"
	"strings"
)

// DefaultGettyEndpoint is the Getty vocabularies SPARQL endpoint.
const DefaultGettyEndpoint = "https://vocab.getty.edu/sparql"

const gettyQuery = `PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
SELECT DISTINCT ?subj WHERE {
    ?subj skos:prefLabel ?lab .
    FILTER(LCASE(STR(?lab)) = %s)
} LIMIT 1`

// Getty looks labels up by exact, case-insensitive preferred label across
// AAT, TGN and ULAN.
type Getty struct {
	Client *SPARQLClient
}

// NewGetty creates a Getty strategy over client.
func NewGetty(client *SPARQLClient) *Getty {
	return &Getty{Client: client}
}

// Name returns the strategy name.
func (g *Getty) Name() string {
	return StrategyGetty
}

// Remote reports that the strategy calls the network.
func (g *Getty) Remote() bool {
	return true
}

// Lookup returns the first subject whose preferred label equals q.Label.
func (g *Getty) Lookup(ctx context.Context, q Query) (string, bool) {
	label := strings.ToLower(strings.TrimSpace(q.Label))
	if label == "" {
		return "", false
	}

	uri, err := g.Client.SelectFirst(ctx, fmt.Sprintf(gettyQuery, literal(label)), "subj")
	if err != nil || uri == "" {
		return "", false
	}
	return uri, true
}
