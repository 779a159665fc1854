package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	RecordLookup("agorha", "made_of", "overrides")
	RecordDocument("louvre", "ok", 0.02)
	RecordRemoteRequest("getty", OutcomeError, 0.5)

	path := filepath.Join(t.TempDir(), "museumwalk.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		`museumwalk_vocab_lookups_total{category="made_of",source="agorha",strategy="overrides"}`,
		`museumwalk_pipeline_documents_total{source="louvre",status="ok"}`,
		`museumwalk_sparql_requests_total{outcome="error",service="getty"}`,
		`museumwalk_pipeline_document_duration_seconds_bucket{source="louvre",le="0.05"}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %s", want)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	if err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "out.prom")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
