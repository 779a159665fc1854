package value

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

const agorhaLike = `{
  "@id": "https://agorha.inha.fr/ark:/54721/abc",
  "crm:P102_has_title": {"rdfs:label": {"@value": "Vase couvert", "@language": "fr"}},
  "crm:P108i_was_produced_by": [
    {"crm:P14_carried_out_by": {"rdfs:label": "Atelier impérial"}},
    {"crm:P4_has_time-span": {"crm:P82a_begin_of_the_begin": 1700}}
  ],
  "crm:P43_has_dimension": {"crm:P90_has_value": 12.5},
  "list": ["a", "", "b", null],
  "empty": [],
  "nothing": null
}`

func TestParsePath(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"title", false},
		{"crm:P108i_was_produced_by[1?]/crm:P4_has_time-span", false},
		{"creator[0]/label", false},
		{"entities[*]/entityLabel", false},
		{"crm:P34_concerned[-1]", false},
		{"", true},
		{"a//b", true},
		{"[0]", true},
		{"a[x]", true},
		{"a[x?]", true},
	}

	for _, tt := range tests {
		_, err := ParsePath(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePath(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}

func TestPathText(t *testing.T) {
	doc := gjson.Parse(agorhaLike)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"at key", "@id", "https://agorha.inha.fr/ark:/54721/abc"},
		{"json-ld literal unwrapped", "crm:P102_has_title/rdfs:label", "Vase couvert"},
		{"object wrapped as list", "crm:P102_has_title[0]/rdfs:label", "Vase couvert"},
		{"object index 1 is missing", "crm:P102_has_title[1]/rdfs:label", ""},
		{"list index", "crm:P108i_was_produced_by[0]/crm:P14_carried_out_by/rdfs:label", "Atelier impérial"},
		{"index or self on list", "crm:P108i_was_produced_by[1?]/crm:P4_has_time-span/crm:P82a_begin_of_the_begin", "1700"},
		{"index or self on object", "crm:P43_has_dimension[1?]/crm:P90_has_value", "12.5"},
		{"negative index", "crm:P108i_was_produced_by[-1]/crm:P4_has_time-span/crm:P82a_begin_of_the_begin", "1700"},
		{"plain key on list", "crm:P108i_was_produced_by/crm:P14_carried_out_by", ""},
		{"first non-empty of fan-out", "list[*]", "a"},
		{"missing key", "nope/deeper", ""},
		{"null", "nothing", ""},
		{"object without value", "crm:P108i_was_produced_by[0]/crm:P14_carried_out_by", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustPath(tt.path).Text(doc)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathTexts(t *testing.T) {
	doc := gjson.Parse(agorhaLike)

	got := MustPath("list[*]").Texts(doc)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Texts = %v, want %v", got, want)
	}

	if got := MustPath("empty[*]").Texts(doc); got != nil {
		t.Errorf("Texts on empty list = %v, want nil", got)
	}
}

func TestPathPresent(t *testing.T) {
	doc := gjson.Parse(agorhaLike)

	tests := []struct {
		path string
		want bool
	}{
		{"crm:P108i_was_produced_by", true},
		{"empty", false},
		{"nothing", false},
		{"missing", false},
		{"crm:P43_has_dimension", true},
	}

	for _, tt := range tests {
		if got := MustPath(tt.path).Present(doc); got != tt.want {
			t.Errorf("Present(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"  bronze "`, "bronze"},
		{`1750`, "1750"},
		{`12.5`, "12.5"},
		{`{"@value": "jade"}`, "jade"},
		{`{"@value": 1820}`, "1820"},
		{`{"label": "x"}`, ""},
		{`["a"]`, ""},
		{`null`, ""},
	}

	for _, tt := range tests {
		if got := Literal(gjson.Parse(tt.raw)); got != tt.want {
			t.Errorf("Literal(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanStripAndCollapse(t *testing.T) {
	got := Clean("<p>Vase   à <b>décor</b> bleu</p>", WithStripHTML(), WithCollapseWhitespace())
	if got != "Vase à décor bleu" {
		t.Errorf("Clean = %q", got)
	}
}
