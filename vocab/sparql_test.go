package vocab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
)

func bindingsJSON(binding, uri string) string {
	if uri == "" {
		return `{"head":{"vars":["` + binding + `"]},"results":{"bindings":[]}}`
	}
	return `{"head":{"vars":["` + binding + `"]},"results":{"bindings":[{"` + binding + `":{"type":"uri","value":"` + uri + `"}}]}}`
}

func TestSelectFirst(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"match", http.StatusOK, bindingsJSON("subj", "http://vocab.getty.edu/aat/300010957"), "http://vocab.getty.edu/aat/300010957", false},
		{"no rows", http.StatusOK, bindingsJSON("subj", ""), "", false},
		{"server error", http.StatusInternalServerError, "boom", "", true},
		{"malformed json", http.StatusOK, `{"results":`, "", true},
		{"no bindings", http.StatusOK, `{"head":{}}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, sparqlResultsJSON, r.Header.Get("Accept"))
				assert.Equal(t, "museumwalk-test", r.Header.Get("User-Agent"))
				assert.NotEmpty(t, r.URL.Query().Get("query"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewSPARQLClient("test", srv.URL, 5*time.Second, "museumwalk-test")
			got, err := c.SelectFirst(context.Background(), "SELECT ?subj WHERE {}", "subj")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectFirstTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewSPARQLClient("test", srv.URL, 50*time.Millisecond, "")
	_, err := c.SelectFirst(context.Background(), "SELECT ?subj WHERE {}", "subj")
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, `"bronze"`, literal("bronze"))
	assert.Equal(t, `"Fondation \"X\""`, literal(`Fondation "X"`))
	assert.Equal(t, `"a\\b\nc"`, literal("a\\b\nc"))
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"Paris, France", "Paris", "France"}, searchTerms("Paris, France"))
	assert.Equal(t, []string{"Chine"}, searchTerms(" Chine "))
	assert.Equal(t, []string{"a,a", "a"}, searchTerms("a,a"))
	assert.Nil(t, searchTerms("  "))
}

func TestGettyLowercasesLabel(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(bindingsJSON("subj", "http://vocab.getty.edu/tgn/1000111")))
	}))
	defer srv.Close()

	g := NewGetty(NewSPARQLClient(StrategyGetty, srv.URL, time.Second, ""))
	uri, ok := g.Lookup(context.Background(), Query{Label: "CHINE"})
	assert.True(t, ok)
	assert.Equal(t, "http://vocab.getty.edu/tgn/1000111", uri)
	assert.Contains(t, query, `= "chine"`)
}

// Getty failing must hand over to Wikidata, which tries the whole label
// before its comma-separated parts.
func TestRemoteChainGettyErrorThenWikidataSegments(t *testing.T) {
	getty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer getty.Close()

	var mu sync.Mutex
	var searched []string
	wikidata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		mu.Lock()
		searched = append(searched, q)
		mu.Unlock()
		if strings.Contains(q, `mwapi:search "Lyon"`) {
			_, _ = w.Write([]byte(bindingsJSON("item", "http://www.wikidata.org/entity/Q456")))
			return
		}
		_, _ = w.Write([]byte(bindingsJSON("item", "")))
	}))
	defer wikidata.Close()

	r := New(mapping.NewEmptyRegistry(), WithRemote(
		NewGetty(NewSPARQLClient(StrategyGetty, getty.URL, time.Second, "")),
		NewWikidata(NewSPARQLClient(StrategyWikidata, wikidata.URL, time.Second, ""), ""),
	))

	res := r.Lookup(context.Background(), Query{Source: hub.SourceLouvre, Category: mapping.CategoryTookPlaceAt, Label: "Bibliothèque, Lyon"})
	assert.Equal(t, "http://www.wikidata.org/entity/Q456", res.URI)
	assert.Equal(t, StrategyWikidata, res.Strategy)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, searched, 3)
	assert.Contains(t, searched[0], `mwapi:search "Bibliothèque, Lyon"`)
	assert.Contains(t, searched[1], `mwapi:search "Bibliothèque"`)
	assert.Contains(t, searched[2], `mwapi:language "fr"`)
}

func TestRemoteFailuresYieldNotFound(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	r := New(mapping.NewEmptyRegistry(), WithRemote(
		NewGetty(NewSPARQLClient(StrategyGetty, down.URL, time.Second, "")),
		NewWikidata(NewSPARQLClient(StrategyWikidata, down.URL, time.Second, ""), "fr"),
	))

	assert.Equal(t, mapping.NotFoundURI, r.Resolve(context.Background(), hub.SourceLouvre, mapping.CategoryCarriedOutBy, "Inconnu"))
}
