package agorha

import (
	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
	"github.com/lehigh-university-libraries/museumwalk/value"
)

const (
	location   = "crm:P54_has_current_permanent_location"
	production = "crm:P108i_was_produced_by"
	referredBy = "crm:P67i_is_referred_to_by"
	transfers  = "crm:P24i_changed_ownership_through"

	// The production event carrying the dates is the second entry when
	// the notice lists several, otherwise the only one.
	dated    = production + "[1?]/crm:P4_has_time-span"
	material = "crm:P34_concerned[-1]/crm:P45_consists_of/crm:P1_is_identified_by[*]/rdfs:label"
)

var (
	references = value.MustPath(referredBy + "[*]")
	note       = value.MustPath("crm:P3_has_note")
)

// description returns the first reference that is plain text or a note
// with a literal value, in document order.
func description(doc gjson.Result) string {
	for _, ref := range references.Eval(doc) {
		if ref.Type == gjson.String {
			return ref.Str
		}
		n := note.First(ref)
		if n.IsObject() && n.Get(gjson.Escape("@value")).Exists() {
			return value.Literal(n)
		}
	}
	return ""
}

// Rules is the Agorha extraction table.
//
// The inventory number lives in the second permanent-location entry when
// locations are listed; a single location nests it one or three levels down.
// Dimension entries without a value are skipped, and the remaining ones are
// read as height, length, width in that order.
var Rules = &source.Ruleset{
	Source: hub.SourceAgorha,
	Rules: []source.Rule{
		source.At(hub.FieldExternalID, "@id"),
		source.At(hub.FieldTitle, "crm:P102_has_title[0]/rdfs:label"),
		source.At(hub.FieldInventoryNumber,
			location+"[1]/crm:P87_is_identified_by/rdfs:label",
			location+"[1]/crm:P3_has_note",
			location+"/crm:P87_is_identified_by[1]/rdfs:label",
			location+"/crm:P87_is_identified_by/crm:P1_is_identified_by/crm:P87_is_identified_by/rdfs:label",
		),
		source.At(hub.FieldCreationLabel,
			dated+"/crm:P115_finishes/crm:P78_is_identified_by/crm:P1_is_identified_by/rdfs:label"),
		source.At(hub.FieldBeginYear, dated+"/crm:P82a_begin_of_the_begin"),
		source.At(hub.FieldEndYear, dated+"/crm:P82b_end_of_the_end"),
		source.At(hub.FieldPlaceOfCreation,
			production+"[*]/crm:P7_took_place_at/crm:P1_is_identified_by[0]/crm:P87_is_identified_by/rdfs:label"),
		source.At(hub.FieldCreator, production+"[0]/crm:P14_carried_out_by/rdfs:label"),
		source.At(hub.FieldCollection, transfers+"[*]/crm:P67_refers_to[0]/rdfs:label"),
		{Field: hub.FieldObjectDescription, Read: description},
		source.At(hub.FieldOwner, referredBy+"[*]/crm:P51_has_former_or_current_owner/rdfs:label"),
		source.At(hub.FieldCurrentLocation,
			location+"[0]/crm:P87_is_identified_by[0]/crm:P1_is_identified_by/crm:P87_is_identified_by/rdfs:label"),
	},
	Materials: source.ListRule{
		Path: value.MustPath(material),
	},
	Dimensions: source.DimensionRule{
		Entries: value.MustPath("crm:P43_has_dimension[*]"),
		Value:   value.MustPath("crm:P90_has_value"),
		Unit:    value.MustPath("crm:P91_has_unit/rdfs:label"),
		Axes:    []hub.Axis{hub.AxisHeight, hub.AxisLength, hub.AxisWidth},
		Compact: true,
	},
	Transfer: &source.TransferRule{
		When: value.MustPath(transfers),
		Rules: []source.Rule{
			source.At(hub.FieldModeOfTransfer, transfers+"[2]/crm:P67_refers_to/rdfs:label"),
		},
	},
	Extras: []source.ExtraRule{
		{Key: "type", Path: value.MustPath("@type[0]")},
	},
}
