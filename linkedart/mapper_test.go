package linkedart

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
	"github.com/lehigh-university-libraries/museumwalk/vocab"
)

// fixedResolver answers "urn:<category>:<label>" and records every call.
type fixedResolver struct {
	calls []string
}

func (f *fixedResolver) Resolve(_ context.Context, _ hub.SourceID, category mapping.Category, label string) string {
	f.calls = append(f.calls, string(category)+"="+label)
	if label == hub.NotSpecified {
		return mapping.NotSpecifiedURI
	}
	return "urn:" + string(category) + ":" + label
}

func louvreRecord() *hub.Record {
	rec := hub.NewRecord(hub.SourceLouvre)
	rec.ExternalID = hub.TextOf("https://collections.louvre.fr/ark:/53355/cl010062370")
	rec.Title = hub.TextOf("Vase à décor de dragons")
	rec.InventoryNumber = hub.TextOf("MG 1234")
	rec.Timespan.CreationLabel = hub.TextOf("XVIIIe siècle")
	rec.Timespan.BeginYear = hub.TextOf("1700")
	rec.Timespan.EndYear = hub.TextOf("1799")
	rec.PlaceOfCreation = hub.TextOf("Chine")
	rec.Collection = hub.TextOf("Département des Objets d'art")
	rec.SetDimension(hub.AxisWidth, hub.TextOf("12.5"), hub.TextOf("cm"))
	rec.SetDimension(hub.AxisHeight, hub.TextOf("30"), hub.Text{})
	rec.Materials = hub.Texts("porcelaine", "émail")
	rec.ObjectDescription = hub.TextOf("Décor <bleu> & blanc")
	rec.CurrentLocation = hub.TextOf("Aile Richelieu")
	return rec
}

func TestMapShape(t *testing.T) {
	r := &fixedResolver{}
	obj := NewMapper(r).Map(context.Background(), louvreRecord())

	if obj.Context != Context || obj.Type != TypeHumanMadeObject {
		t.Errorf("unexpected header: %q %q", obj.Context, obj.Type)
	}
	if obj.ID != "https://collections.louvre.fr/ark:/53355/cl010062370" {
		t.Errorf("ID = %q", obj.ID)
	}
	if len(obj.IdentifiedBy) != 2 || *obj.IdentifiedBy[1].Content != "MG 1234" {
		t.Errorf("identified_by = %+v", obj.IdentifiedBy)
	}

	prod := obj.ProducedBy[0]
	if prod.Timespan.Label != "XVIIIe siècle" || prod.Timespan.BeginOfTheBegin != "1700" {
		t.Errorf("timespan = %+v", prod.Timespan)
	}
	if got := prod.TookPlaceAt[0]; got.ID != "urn:took_place_at:Chine" || got.Label != "Chine" || got.Type != TypePlace {
		t.Errorf("took_place_at = %+v", got)
	}
	if got := prod.CarriedOutBy[0]; got.ID != mapping.NotSpecifiedURI || got.Label != hub.NotSpecified {
		t.Errorf("carried_out_by = %+v", got)
	}

	if len(obj.MadeOf) != 2 || obj.MadeOf[1].ID != "urn:made_of:émail" || obj.MadeOf[1].Label != "émail" {
		t.Errorf("made_of = %+v", obj.MadeOf)
	}
	if len(obj.MemberOf) != 1 {
		t.Errorf("member_of should only hold the collection, got %d entries", len(obj.MemberOf))
	}
	if obj.ChangedOwnershipThrough != nil {
		t.Errorf("changed_ownership_through should be omitted, got %+v", obj.ChangedOwnershipThrough)
	}
	if obj.CurrentPermanentCustodian.Label != hub.NotSpecified {
		t.Errorf("current_permanent_custodian = %+v", obj.CurrentPermanentCustodian)
	}
}

func TestMapResolvesEachEntityOnce(t *testing.T) {
	r := &fixedResolver{}
	rec := louvreRecord()
	rec.Exhibition = hub.TextOf("Splendeurs de la Chine")
	rec.ChangedOwnershipThrough = &hub.Transfer{
		ModeOfTransfer: hub.TextOf("don"),
		PreviousOwner:  hub.TextOf("Grandidier, Ernest"),
	}
	NewMapper(r).Map(context.Background(), rec)

	want := []string{
		"took_place_at=Chine",
		"carried_out_by=Not Specified",
		"member_of=Département des Objets d'art",
		"unit=cm",
		"unit=centimeters",
		"unit=centimeters",
		"current_owner=Not Specified",
		"current_permanent_custodian=Not Specified",
		"current_custodian=Not Specified",
		"current_location=Aile Richelieu",
		"made_of=porcelaine",
		"made_of=émail",
		"transferred_title_from=Grandidier, Ernest",
		"exhibition=Splendeurs de la Chine",
	}
	if strings.Join(r.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls:\n got %v\nwant %v", r.calls, want)
	}
}

func TestMapDimensionsAlwaysThree(t *testing.T) {
	rec := louvreRecord()
	rec.SetDimension(hub.AxisWidth, hub.Text{}, hub.Text{})

	obj := NewMapper(&fixedResolver{}).Map(context.Background(), rec)
	if len(obj.Dimension) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(obj.Dimension))
	}

	data, err := json.Marshal(obj.Dimension)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var dims []map[string]any
	if err := json.Unmarshal(data, &dims); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	labels := []string{"Width", "Height", "Length"}
	for i, d := range dims {
		cls := d["classified_as"].([]any)[0].(map[string]any)
		if cls["_label"] != labels[i] {
			t.Errorf("dimension %d is %v, want %s", i, cls["_label"], labels[i])
		}
		if _, ok := d["value"]; !ok {
			t.Errorf("dimension %d has no value key", i)
		}
	}
	if dims[0]["value"] != nil {
		t.Errorf("width value = %v, want null", dims[0]["value"])
	}
	if dims[1]["value"] != float64(30) {
		t.Errorf("height value = %v, want 30", dims[1]["value"])
	}
	if dims[2]["value"] != nil {
		t.Errorf("length value = %v, want null", dims[2]["value"])
	}
	if obj.Dimension[0].Unit.Label != hub.DefaultUnit {
		t.Errorf("width unit = %q", obj.Dimension[0].Unit.Label)
	}
}

func TestMapExhibitionAndTransfer(t *testing.T) {
	rec := louvreRecord()
	rec.Exhibition = hub.TextOf("Splendeurs de la Chine")
	rec.ChangedOwnershipThrough = &hub.Transfer{
		ModeOfTransfer:    hub.TextOf("legs"),
		TimespanBeginning: hub.TextOf("1894"),
	}

	obj := NewMapper(&fixedResolver{}).Map(context.Background(), rec)

	if len(obj.MemberOf) != 2 {
		t.Fatalf("member_of = %+v", obj.MemberOf)
	}
	if ex := obj.MemberOf[1]; ex.ID != "urn:exhibition:Splendeurs de la Chine" || ex.Type != TypeSet {
		t.Errorf("exhibition = %+v", ex)
	}

	if len(obj.ChangedOwnershipThrough) != 1 {
		t.Fatalf("changed_ownership_through = %+v", obj.ChangedOwnershipThrough)
	}
	acq := obj.ChangedOwnershipThrough[0]
	if acq.Type != "Acquisition" || acq.Label != "legs" {
		t.Errorf("acquisition = %+v", acq)
	}
	if acq.Timespan.BeginOfTheBegin != "1894" || acq.Timespan.EndOfTheEnd != hub.NotSpecified {
		t.Errorf("acquisition timespan = %+v", acq.Timespan)
	}
	if prev := acq.TransferredTitleFrom[0]; prev.ID != mapping.NotSpecifiedURI || prev.Label != hub.NotSpecified {
		t.Errorf("transferred_title_from = %+v", prev)
	}
}

func TestMapIsIdempotent(t *testing.T) {
	rec := louvreRecord()
	rec.Exhibition = hub.TextOf("Splendeurs de la Chine")
	m := NewMapper(&fixedResolver{})

	first, err := Marshal(m.Map(context.Background(), rec))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(m.Map(context.Background(), rec))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("outputs differ:\n%s\n---\n%s", first, second)
	}
}

func TestEncode(t *testing.T) {
	obj := NewMapper(&fixedResolver{}).Map(context.Background(), louvreRecord())

	var buf bytes.Buffer
	if err := Encode(&buf, obj); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	checks := []string{
		"{\n  \"@context\": \"https://linked.art/ns/v1/linked-art.json\",\n  \"id\":",
		`"_label": "Vase à décor de dragons"`,
		`"content": "Décor <bleu> & blanc"`,
		`"value": 12.5`,
		`"value": null`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("output should end with a newline")
	}
	if strings.Contains(out, "changed_ownership_through") {
		t.Error("absent transfer should be omitted")
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		in   Measure
		want string
	}{
		{Measure{}, "null"},
		{Measure{Text: "42", Valid: true}, "42"},
		{Measure{Text: "-3", Valid: true}, "-3"},
		{Measure{Text: "12.5", Valid: true}, "12.5"},
		{Measure{Text: "4.50", Valid: true}, `"4.50"`},
		{Measure{Text: "12,5", Valid: true}, `"12,5"`},
		{Measure{Text: "1,234", Valid: true}, `"1,234"`},
		{Measure{Text: "007", Valid: true}, `"007"`},
		{Measure{Text: "1e3", Valid: true}, `"1e3"`},
		{Measure{Text: "0x1p4", Valid: true}, `"0x1p4"`},
		{Measure{Text: "NaN", Valid: true}, `"NaN"`},
		{Measure{Text: "Inf", Valid: true}, `"Inf"`},
		{Measure{Text: "+Inf", Valid: true}, `"+Inf"`},
		{Measure{Text: ".5", Valid: true}, `".5"`},
		{Measure{Text: "env. 3", Valid: true}, `"env. 3"`},
		{Measure{Text: "H. <12> & 3", Valid: true}, `"H. <12> & 3"`},
	}
	for _, tt := range tests {
		got, err := tt.in.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%+v): %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON(%+v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMapAgorhaMaterialsFromOverrides(t *testing.T) {
	tables, err := mapping.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	resolver := vocab.New(tables, vocab.WithOffline(true))

	rec := hub.NewRecord(hub.SourceAgorha)
	rec.ExternalID = hub.TextOf("https://agorha.inha.fr/ark:/54721/0001")
	rec.Title = hub.TextOf("Brûle-parfum")
	rec.Materials = hub.Texts("bronze", "jade")

	obj := NewMapper(resolver).Map(context.Background(), rec)

	want := []string{
		"https://vocab.getty.edu/aat/300010957",
		"https://vocab.getty.edu/aat/300011119",
	}
	if len(obj.MadeOf) != len(want) {
		t.Fatalf("made_of = %+v", obj.MadeOf)
	}
	for i, uri := range want {
		if obj.MadeOf[i].ID != uri {
			t.Errorf("made_of[%d] = %q, want %q", i, obj.MadeOf[i].ID, uri)
		}
	}
	if obj.Dimension[0].Unit.ID != "http://vocab.getty.edu/aat/300379098" {
		t.Errorf("default unit resolved to %q", obj.Dimension[0].Unit.ID)
	}
}
