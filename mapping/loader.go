package mapping

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/museumwalk/hub"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

// Registry holds loaded override tables, one per source.
type Registry struct {
	tables map[hub.SourceID]*Table
}

// NewRegistry creates a registry with the embedded tables loaded.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		tables: make(map[hub.SourceID]*Table),
	}

	entries, err := embeddedTables.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("reading embedded tables: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		data, err := embeddedTables.ReadFile("tables/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded table %s: %w", entry.Name(), err)
		}

		table, err := ParseTable(data)
		if err != nil {
			return nil, fmt.Errorf("embedded table %s: %w", entry.Name(), err)
		}
		r.tables[table.Source] = table
	}

	return r, nil
}

// NewEmptyRegistry creates a registry without any table.
func NewEmptyRegistry() *Registry {
	return &Registry{tables: make(map[hub.SourceID]*Table)}
}

// LoadTable loads and validates a table from a file path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading override table: %w", err)
	}

	return ParseTable(data)
}

// ParseTable parses and validates a table from YAML content.
func ParseTable(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing override table YAML: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// Get retrieves the table of a source.
func (r *Registry) Get(source hub.SourceID) (*Table, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tables[source]
	return t, ok
}

// Category returns the entries of one category of a source, or nil.
func (r *Registry) Category(source hub.SourceID, c Category) *CategoryTable {
	t, _ := r.Get(source)
	return t.Category(c)
}

// Register adds a table, replacing any table for the same source.
func (r *Registry) Register(table *Table) {
	r.tables[table.Source] = table
}

// List returns the sources that have a table, sorted.
func (r *Registry) List() []hub.SourceID {
	names := make([]hub.SourceID, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LoadFromDirectory loads every table in dir. A table replaces the one
// already registered for its source; a table that fails validation is an
// error.
func (r *Registry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading override directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		table, err := LoadTable(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		r.tables[table.Source] = table
	}

	return nil
}

// Marshal renders a table back to YAML.
func (t *Table) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
