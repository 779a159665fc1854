package vocab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/museumwalk/metrics"
)

const sparqlResultsJSON = "application/sparql-results+json"

// maxResponseBytes bounds how much of a SPARQL answer is read. A LIMIT 1
// SELECT never needs more.
const maxResponseBytes = 1 << 20

// SPARQLClient runs SELECT queries against a SPARQL endpoint.
type SPARQLClient struct {
	// Service labels logs and metrics (e.g., "getty")
	Service    string
	Endpoint   string
	HTTPClient *http.Client
	UserAgent  string
}

// NewSPARQLClient creates a client with its own timeout.
func NewSPARQLClient(service, endpoint string, timeout time.Duration, userAgent string) *SPARQLClient {
	return &SPARQLClient{
		Service:   service,
		Endpoint:  endpoint,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SelectFirst runs query and returns the value bound to binding in the
// first result row. An empty result set is not an error and yields "".
func (c *SPARQLClient) SelectFirst(ctx context.Context, query, binding string) (string, error) {
	start := time.Now()
	value, err := c.selectFirst(ctx, query, binding)

	outcome := metrics.OutcomeMatch
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		slog.Debug("sparql request failed", "service", c.Service, "error", err, "duration", time.Since(start))
	case value == "":
		outcome = metrics.OutcomeNoMatch
	}
	metrics.RecordRemoteRequest(c.Service, outcome, time.Since(start).Seconds())

	return value, err
}

func (c *SPARQLClient) selectFirst(ctx context.Context, query, binding string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", sparqlResultsJSON)

	reqURL := c.Endpoint
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", sparqlResultsJSON)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", c.Service, err)
	}
	defer resp.Body.Close()

	slog.Debug("sparql request complete", "service", c.Service, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("querying %s: status %d", c.Service, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", c.Service, err)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%s returned malformed JSON", c.Service)
	}

	bindings := gjson.GetBytes(data, "results.bindings")
	if !bindings.IsArray() {
		return "", fmt.Errorf("%s response has no results.bindings", c.Service)
	}

	first := bindings.Get("0")
	if !first.Exists() {
		return "", nil
	}
	return strings.TrimSpace(first.Get(gjson.Escape(binding) + ".value").String()), nil
}

// literal renders s as a double-quoted SPARQL string literal.
func literal(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return `"` + r.Replace(s) + `"`
}
