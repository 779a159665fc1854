// Package hub defines the intermediate record every museum source is
// normalised into before it is mapped to Linked Art.
package hub

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// NotSpecified is the literal written out for unknown values.
const NotSpecified = "Not Specified"

// DefaultUnit is the measurement unit assumed when a source gives none.
const DefaultUnit = "centimeters"

// SourceID identifies the institution a record came from.
type SourceID string

const (
	SourceAgorha      SourceID = "agorha"
	SourceLouvre      SourceID = "louvre"
	SourceParisMusees SourceID = "paris_musees"
)

// Sources lists every known source in a stable order.
func Sources() []SourceID {
	return []SourceID{SourceAgorha, SourceLouvre, SourceParisMusees}
}

// Valid reports whether s is a known source.
func (s SourceID) Valid() bool {
	switch s {
	case SourceAgorha, SourceLouvre, SourceParisMusees:
		return true
	}
	return false
}

// ParseSource converts a source tag into a SourceID.
func ParseSource(s string) (SourceID, error) {
	id := SourceID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("unknown source: %q", s)
	}
	return id, nil
}

// Timespan is the creation date of an object.
type Timespan struct {
	CreationLabel Text
	BeginYear     Text
	EndYear       Text
}

// Transfer is an ownership-transfer event. It is only present on a record
// when the source documents one.
type Transfer struct {
	ModeOfTransfer    Text
	TimespanBeginning Text
	TimespanEnd       Text
	PreviousOwner     Text
}

// Axis is one of the three measured dimensions.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
	AxisLength
)

// Axes lists the axes in output order.
func Axes() []Axis {
	return []Axis{AxisWidth, AxisHeight, AxisLength}
}

func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	case AxisLength:
		return "length"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Record is the source-agnostic pivot between extraction and mapping.
type Record struct {
	Source     SourceID
	ExternalID Text
	Title      Text

	InventoryNumber Text
	Timespan        Timespan

	PlaceOfCreation           Text
	Creator                   Text
	Collection                Text
	Owner                     Text
	CurrentPermanentCustodian Text
	CurrentCustodian          Text
	CurrentLocation           Text

	Width      Text
	Height     Text
	Length     Text
	WidthUnit  Text
	HeightUnit Text
	LengthUnit Text

	Materials         []Text
	ObjectDescription Text

	ChangedOwnershipThrough *Transfer
	Exhibition              Text

	// Extra holds source fields that have no place in the pivot schema.
	Extra *structpb.Struct
}

// NewRecord creates an empty record for the given source.
func NewRecord(source SourceID) *Record {
	return &Record{
		Source:    source,
		Materials: make([]Text, 0),
	}
}

// Dimension returns the value and unit recorded for an axis. The unit
// falls back to DefaultUnit.
func (r *Record) Dimension(a Axis) (Text, string) {
	switch a {
	case AxisWidth:
		return r.Width, r.WidthUnit.Or(DefaultUnit)
	case AxisHeight:
		return r.Height, r.HeightUnit.Or(DefaultUnit)
	case AxisLength:
		return r.Length, r.LengthUnit.Or(DefaultUnit)
	}
	return Text{}, DefaultUnit
}

// SetDimension stores the value and unit for an axis.
func (r *Record) SetDimension(a Axis, v, unit Text) {
	switch a {
	case AxisWidth:
		r.Width, r.WidthUnit = v, unit
	case AxisHeight:
		r.Height, r.HeightUnit = v, unit
	case AxisLength:
		r.Length, r.LengthUnit = v, unit
	}
}

// SetExtra sets an extra field value on the record.
func (r *Record) SetExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = &structpb.Struct{
			Fields: make(map[string]*structpb.Value),
		}
	}
	v, err := structpb.NewValue(value)
	if err == nil {
		r.Extra.Fields[key] = v
	}
}

// GetExtra retrieves an extra field value.
func (r *Record) GetExtra(key string) (any, bool) {
	if r.Extra == nil || r.Extra.Fields == nil {
		return nil, false
	}
	v, ok := r.Extra.Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// GetExtraString retrieves an extra field as a string.
func (r *Record) GetExtraString(key string) string {
	v, ok := r.GetExtra(key)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
