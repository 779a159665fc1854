// Package linkedart builds Linked Art HumanMadeObject records from
// intermediate records.
package linkedart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Context is the JSON-LD context of every object.
const Context = "https://linked.art/ns/v1/linked-art.json"

// Linked Art class names.
const (
	TypeHumanMadeObject  = "HumanMadeObject"
	TypeName             = "Name"
	TypeIdentifier       = "Identifier"
	TypeType             = "Type"
	TypeLanguage         = "Language"
	TypeProduction       = "Production"
	TypeTimeSpan         = "TimeSpan"
	TypePlace            = "Place"
	TypeSet              = "Set"
	TypeMaterial         = "Material"
	TypeDimension        = "Dimension"
	TypeMeasurementUnit  = "MeasurementUnit"
	TypeLinguisticObject = "LinguisticObject"
	TypeGroup            = "Group"
	TypeAcquisition      = "Acquisition"
)

// Getty AAT terms used to classify parts of an object.
var (
	Artwork         = Reference{ID: "http://vocab.getty.edu/aat/300133025", Type: TypeType, Label: "Artwork"}
	PrimaryName     = Reference{ID: "http://vocab.getty.edu/aat/300404670", Type: TypeType, Label: "Primary Name"}
	French          = Reference{ID: "http://vocab.getty.edu/page/aat/300388306", Type: TypeLanguage, Label: "French", Notation: "fr"}
	AccessionNumber = Reference{ID: "http://vocab.getty.edu/aat/300312355", Type: TypeType, Label: "Accession Number"}
	BriefText       = Reference{ID: "http://vocab.getty.edu/aat/300418049", Type: TypeType, Label: "Brief Text"}
	Description     = Reference{ID: "http://vocab.getty.edu/aat/300435416", Type: TypeType, Label: "Description", ClassifiedAs: []Reference{BriefText}}
	Width           = Reference{ID: "http://vocab.getty.edu/aat/300055647", Type: TypeType, Label: "Width"}
	Height          = Reference{ID: "http://vocab.getty.edu/aat/300055644", Type: TypeType, Label: "Height"}
	Length          = Reference{ID: "http://vocab.getty.edu/aat/300055645", Type: TypeType, Label: "Length"}
)

// Object is a Linked Art HumanMadeObject. Field order is the output order.
type Object struct {
	Context      string       `json:"@context"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	Label        string       `json:"_label"`
	IdentifiedBy []Identifier `json:"identified_by"`
	ProducedBy   []Production `json:"produced_by"`
	MemberOf     []Reference  `json:"member_of"`
	MadeOf       []Reference  `json:"made_of"`
	Dimension    []Dimension  `json:"dimension"`

	ReferredToBy []LinguisticObject `json:"referred_to_by"`

	CurrentOwner              []Reference `json:"current_owner"`
	CurrentPermanentCustodian Reference   `json:"current_permanent_custodian"`
	CurrentCustodian          []Reference `json:"current_custodian"`
	CurrentLocation           []Reference `json:"current_location"`

	ChangedOwnershipThrough []Acquisition `json:"changed_ownership_through,omitempty"`
}

// Reference points at an entity by URI and keeps the source label beside it.
type Reference struct {
	ID           string      `json:"id"`
	Type         string      `json:"type,omitempty"`
	Label        string      `json:"_label"`
	Notation     string      `json:"notation,omitempty"`
	ClassifiedAs []Reference `json:"classified_as,omitempty"`
}

// Identifier is a Name or an Identifier. Content is null for a missing
// accession number.
type Identifier struct {
	Type         string      `json:"type"`
	ClassifiedAs []Reference `json:"classified_as"`
	Content      *string     `json:"content"`
	Language     []Reference `json:"language,omitempty"`
}

// Production records when, where and by whom the object was made.
type Production struct {
	Type         string      `json:"type"`
	Timespan     TimeSpan    `json:"timespan"`
	TookPlaceAt  []Reference `json:"took_place_at"`
	CarriedOutBy []Reference `json:"carried_out_by"`
}

// TimeSpan bounds an event.
type TimeSpan struct {
	Type            string `json:"type"`
	Label           string `json:"_label,omitempty"`
	BeginOfTheBegin string `json:"begin_of_the_begin"`
	EndOfTheEnd     string `json:"end_of_the_end"`
}

// Dimension is one measurement. Value is null when the axis was not measured.
type Dimension struct {
	Type         string      `json:"type"`
	ClassifiedAs []Reference `json:"classified_as"`
	Value        Measure     `json:"value"`
	Unit         Reference   `json:"unit"`
}

// LinguisticObject is a piece of descriptive text.
type LinguisticObject struct {
	Type         string      `json:"type"`
	ClassifiedAs []Reference `json:"classified_as"`
	Content      *string     `json:"content"`
}

// Acquisition is an ownership transfer.
type Acquisition struct {
	Type                 string      `json:"type"`
	Label                string      `json:"_label"`
	Timespan             TimeSpan    `json:"timespan"`
	TransferredTitleFrom []Reference `json:"transferred_title_from"`
}

// Measure is a dimension value as recorded by the source. It encodes as a
// JSON number when the text is a plain decimal that reads back unchanged,
// as the verbatim string otherwise and as null when absent.
type Measure struct {
	Text  string
	Valid bool
}

// MarshalJSON implements json.Marshaler.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	if f, err := strconv.ParseFloat(m.Text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && strconv.FormatFloat(f, 'f', -1, 64) == m.Text {
		return []byte(m.Text), nil
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(m.Text); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
