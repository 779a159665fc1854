package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

func auditFixture() []*hub.Record {
	a := hub.NewRecord(hub.SourceLouvre)
	a.ExternalID = hub.TextOf("https://collections.louvre.fr/ark:/53355/cl010062370")
	a.Title = hub.TextOf("Vase")
	a.Width = hub.TextOf("12,5")
	a.Materials = hub.Texts("Matériau : bronze")
	a.ChangedOwnershipThrough = &hub.Transfer{ModeOfTransfer: hub.TextOf("don")}
	a.SetExtra("objectType", "vase")
	a.SetExtra("modified", "2024-01-01")

	b := hub.NewRecord(hub.SourceLouvre)
	b.ExternalID = hub.TextOf("https://collections.louvre.fr/ark:/53355/cl010062371")
	b.Title = hub.TextOf("Bol")
	b.Materials = []hub.Text{{}}
	b.SetExtra("objectType", 3.0)

	return []*hub.Record{a, b}
}

func TestAuditRecords(t *testing.T) {
	report := auditRecords(auditFixture(), 2)

	if report.Extracted != 2 {
		t.Fatalf("Extracted = %d, want 2", report.Extracted)
	}

	coverage := []struct {
		key   string
		count int
	}{
		{"external_id", 2},
		{"title", 2},
		{"width", 1},
		{"height", 0},
		{"materials", 1},
		{"changed_ownership_through", 1},
		{"changed_ownership_through.mode_of_transfer", 1},
		{"creator", 0},
	}
	for _, tt := range coverage {
		if got := report.FieldCoverage[tt.key].Count; got != tt.count {
			t.Errorf("coverage[%s] = %d, want %d", tt.key, got, tt.count)
		}
	}
	if got := report.FieldCoverage["title"].Percentage; got != 100 {
		t.Errorf("title percentage = %v, want 100", got)
	}

	objectType := report.ExtraFields["objectType"]
	if objectType.Count != 2 || objectType.Types["string"] != 1 || objectType.Types["number"] != 1 {
		t.Errorf("objectType stats = %+v", objectType)
	}
	if got := report.TypeInconsistency["objectType"]; len(got) != 2 || got[0] != "number" || got[1] != "string" {
		t.Errorf("TypeInconsistency[objectType] = %v", got)
	}
	if _, ok := report.TypeInconsistency["modified"]; ok {
		t.Error("modified has a single type")
	}
}

func TestAuditExamplesLimit(t *testing.T) {
	var records []*hub.Record
	for _, v := range []string{"a", "b", "a", "c"} {
		r := hub.NewRecord(hub.SourceAgorha)
		r.SetExtra("@type", v)
		records = append(records, r)
	}

	report := auditRecords(records, 2)
	got := report.ExtraFields["@type"].Examples
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Examples = %v, want [a b]", got)
	}
}

func TestFormatAuditReport(t *testing.T) {
	report := auditRecords(auditFixture(), 3)
	report.Source = hub.SourceLouvre
	report.TotalDocuments = 3
	report.Malformed = map[string]string{"broken.json": "missing title"}

	out := formatAuditReport(report)
	for _, want := range []string{
		"Source: louvre",
		"Documents: 3, extracted: 2, malformed: 1",
		"broken.json: missing title",
		"width",
		"objectType: 2 (100.0%)",
		"objectType: number, string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Vase", 10, "Vase"},
		{"Bouteille à décor de dragons", 10, "Bouteil..."},
		{"éééééé", 5, "éé..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestResolveCommandOffline(t *testing.T) {
	t.Setenv("MUSEUMWALK_OFFLINE", "")
	t.Setenv("MUSEUMWALK_OVERRIDES_DIR", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"--offline",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"resolve", "agorha", "made_of", "bronze",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "https://vocab.getty.edu/aat/300010957\toverrides\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestLogLevelFromDotEnv(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", "debug", true, true},
		{"error", "ERROR", false, false},
		{"unknown falls back to info", "trace", false, true},
	}

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MUSEUMWALK_OVERRIDES_DIR", "")
	t.Cleanup(func() {
		logLevel.Set(slog.LevelInfo)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envFile := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(envFile, []byte("LOG_LEVEL="+tt.level+"\n"), 0644); err != nil {
				t.Fatal(err)
			}
			logLevel.Set(slog.LevelWarn)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs([]string{"--offline", "--env-file", envFile, "resolve", "agorha", "made_of", "bronze"})
			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			ctx := context.Background()
			if got := slog.Default().Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := slog.Default().Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
