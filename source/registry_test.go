package source

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

type fakeExtractor struct {
	name   hub.SourceID
	ext    string
	marker string
}

func (f *fakeExtractor) Name() hub.SourceID   { return f.name }
func (f *fakeExtractor) Description() string  { return string(f.name) }
func (f *fakeExtractor) Extensions() []string { return []string{f.ext} }
func (f *fakeExtractor) Extract([]byte) (*hub.Record, error) {
	return hub.NewRecord(f.name), nil
}
func (f *fakeExtractor) CanExtract(peek []byte) bool {
	return f.marker != "" && bytes.Contains(peek, []byte(f.marker))
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(&fakeExtractor{name: hub.SourceAgorha, ext: "jsonld"})
	r.Register(&fakeExtractor{name: hub.SourceLouvre, ext: "json", marker: `"arkId"`})
	r.Register(&fakeExtractor{name: hub.SourceParisMusees, ext: "json", marker: `"absolutePath"`})
	return r
}

func TestRegistryGet(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{"louvre", "LOUVRE", " paris-musees ", "paris_musees"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
		}
	}

	_, err := r.Get("orsay")
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	list := newTestRegistry().List()
	if len(list) != 3 {
		t.Fatalf("List returned %d extractors", len(list))
	}
	if list[0].Name() != hub.SourceAgorha || list[2].Name() != hub.SourceParisMusees {
		t.Errorf("List not sorted: %v, %v, %v", list[0].Name(), list[1].Name(), list[2].Name())
	}
}

func TestRegistryDetect(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		file    string
		peek    string
		want    hub.SourceID
		wantErr bool
	}{
		{"notice.jsonld", `{}`, hub.SourceAgorha, false},
		{"cl01.json", `{"arkId": "cl01"}`, hub.SourceLouvre, false},
		{"vase.json", `{"absolutePath": "/fr"}`, hub.SourceParisMusees, false},
		{"vase.json", `{"id": 1}`, "", true},
		{"record.txt", `{"arkId": "cl01"}`, hub.SourceLouvre, false},
	}

	for _, tt := range tests {
		e, err := r.Detect(tt.file, []byte(tt.peek))
		if (err != nil) != tt.wantErr {
			t.Errorf("Detect(%s) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			continue
		}
		if err == nil && e.Name() != tt.want {
			t.Errorf("Detect(%s) = %s, want %s", tt.file, e.Name(), tt.want)
		}
	}
}
