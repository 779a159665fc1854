package hub

import "fmt"

// Field names a single-valued slot of a Record so extraction rules can
// target it declaratively.
type Field int

const (
	FieldExternalID Field = iota + 1
	FieldTitle
	FieldInventoryNumber
	FieldCreationLabel
	FieldBeginYear
	FieldEndYear
	FieldPlaceOfCreation
	FieldCreator
	FieldCollection
	FieldOwner
	FieldCurrentPermanentCustodian
	FieldCurrentCustodian
	FieldCurrentLocation
	FieldObjectDescription
	FieldExhibition

	// Ownership-transfer fields; ignored unless the record has a transfer.
	FieldModeOfTransfer
	FieldTransferBeginning
	FieldTransferEnd
	FieldPreviousOwner
)

var fieldNames = map[Field]string{
	FieldExternalID:                "external_id",
	FieldTitle:                     "title",
	FieldInventoryNumber:           "inventory_number",
	FieldCreationLabel:             "timespan.creation_label",
	FieldBeginYear:                 "timespan.begin_year",
	FieldEndYear:                   "timespan.end_year",
	FieldPlaceOfCreation:           "place_of_creation",
	FieldCreator:                   "creator",
	FieldCollection:                "collection",
	FieldOwner:                     "owner",
	FieldCurrentPermanentCustodian: "current_permanent_custodian",
	FieldCurrentCustodian:          "current_custodian",
	FieldCurrentLocation:           "current_location",
	FieldObjectDescription:         "object_description",
	FieldExhibition:                "exhibition",
	FieldModeOfTransfer:            "changed_ownership_through.mode_of_transfer",
	FieldTransferBeginning:         "changed_ownership_through.timespan_beginning",
	FieldTransferEnd:               "changed_ownership_through.timespan_end",
	FieldPreviousOwner:             "changed_ownership_through.previous_owner",
}

// Fields lists every field in record order.
func Fields() []Field {
	fields := make([]Field, 0, len(fieldNames))
	for f := FieldExternalID; f <= FieldPreviousOwner; f++ {
		fields = append(fields, f)
	}
	return fields
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Nullable reports whether an absent value is written as null rather than
// the NotSpecified literal.
func (f Field) Nullable() bool {
	switch f {
	case FieldInventoryNumber, FieldObjectDescription, FieldExhibition:
		return true
	}
	return false
}

// Set stores v in the slot named by f.
func (r *Record) Set(f Field, v Text) {
	if p := r.slot(f); p != nil {
		*p = v
	}
}

// Get returns the value of the slot named by f.
func (r *Record) Get(f Field) Text {
	if p := r.slot(f); p != nil {
		return *p
	}
	return Text{}
}

func (r *Record) slot(f Field) *Text {
	switch f {
	case FieldExternalID:
		return &r.ExternalID
	case FieldTitle:
		return &r.Title
	case FieldInventoryNumber:
		return &r.InventoryNumber
	case FieldCreationLabel:
		return &r.Timespan.CreationLabel
	case FieldBeginYear:
		return &r.Timespan.BeginYear
	case FieldEndYear:
		return &r.Timespan.EndYear
	case FieldPlaceOfCreation:
		return &r.PlaceOfCreation
	case FieldCreator:
		return &r.Creator
	case FieldCollection:
		return &r.Collection
	case FieldOwner:
		return &r.Owner
	case FieldCurrentPermanentCustodian:
		return &r.CurrentPermanentCustodian
	case FieldCurrentCustodian:
		return &r.CurrentCustodian
	case FieldCurrentLocation:
		return &r.CurrentLocation
	case FieldObjectDescription:
		return &r.ObjectDescription
	case FieldExhibition:
		return &r.Exhibition
	}

	if r.ChangedOwnershipThrough == nil {
		return nil
	}
	switch f {
	case FieldModeOfTransfer:
		return &r.ChangedOwnershipThrough.ModeOfTransfer
	case FieldTransferBeginning:
		return &r.ChangedOwnershipThrough.TimespanBeginning
	case FieldTransferEnd:
		return &r.ChangedOwnershipThrough.TimespanEnd
	case FieldPreviousOwner:
		return &r.ChangedOwnershipThrough.PreviousOwner
	}
	return nil
}
