package hub

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
)

type timespanJSON struct {
	CreationLabel string `json:"creation_label"`
	BeginYear     string `json:"begin_year"`
	EndYear       string `json:"end_year"`
}

type transferJSON struct {
	ModeOfTransfer    string `json:"mode_of_transfer"`
	TimespanBeginning string `json:"timespan_beginning"`
	TimespanEnd       string `json:"timespan_end"`
	PreviousOwner     string `json:"previous_owner"`
}

type recordJSON struct {
	SourceID                  SourceID        `json:"source_id"`
	ExternalID                Text            `json:"external_id"`
	Title                     Text            `json:"title"`
	InventoryNumber           Text            `json:"inventory_number"`
	Timespan                  timespanJSON    `json:"timespan"`
	PlaceOfCreation           string          `json:"place_of_creation"`
	Creator                   string          `json:"creator"`
	Collection                string          `json:"collection"`
	Width                     Text            `json:"width"`
	Height                    Text            `json:"height"`
	Length                    Text            `json:"length"`
	WidthUnit                 string          `json:"width_unit"`
	HeightUnit                string          `json:"height_unit"`
	LengthUnit                string          `json:"length_unit"`
	Materials                 []string        `json:"materials"`
	ObjectDescription         Text            `json:"object_description"`
	Owner                     string          `json:"owner"`
	CurrentPermanentCustodian string          `json:"current_permanent_custodian"`
	CurrentCustodian          string          `json:"current_custodian"`
	CurrentLocation           string          `json:"current_location"`
	ChangedOwnershipThrough   *transferJSON   `json:"changed_ownership_through,omitempty"`
	Exhibition                *string         `json:"exhibition,omitempty"`
	Extra                     json.RawMessage `json:"extra,omitempty"`
}

// MarshalJSON writes the record in its external form: unknown labels carry
// the NotSpecified literal, nullable values are null and optional blocks
// are omitted.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		SourceID:        r.Source,
		ExternalID:      r.ExternalID,
		Title:           r.Title,
		InventoryNumber: r.InventoryNumber,
		Timespan: timespanJSON{
			CreationLabel: r.Timespan.CreationLabel.Label(),
			BeginYear:     r.Timespan.BeginYear.Label(),
			EndYear:       r.Timespan.EndYear.Label(),
		},
		PlaceOfCreation:           r.PlaceOfCreation.Label(),
		Creator:                   r.Creator.Label(),
		Collection:                r.Collection.Label(),
		Width:                     r.Width,
		Height:                    r.Height,
		Length:                    r.Length,
		WidthUnit:                 r.WidthUnit.Or(DefaultUnit),
		HeightUnit:                r.HeightUnit.Or(DefaultUnit),
		LengthUnit:                r.LengthUnit.Or(DefaultUnit),
		Materials:                 make([]string, 0, len(r.Materials)),
		ObjectDescription:         r.ObjectDescription,
		Owner:                     r.Owner.Label(),
		CurrentPermanentCustodian: r.CurrentPermanentCustodian.Label(),
		CurrentCustodian:          r.CurrentCustodian.Label(),
		CurrentLocation:           r.CurrentLocation.Label(),
		Exhibition:                r.Exhibition.Ptr(),
	}

	for _, m := range r.Materials {
		out.Materials = append(out.Materials, m.Label())
	}

	if t := r.ChangedOwnershipThrough; t != nil {
		out.ChangedOwnershipThrough = &transferJSON{
			ModeOfTransfer:    t.ModeOfTransfer.Label(),
			TimespanBeginning: t.TimespanBeginning.Label(),
			TimespanEnd:       t.TimespanEnd.Label(),
			PreviousOwner:     t.PreviousOwner.Label(),
		}
	}

	if r.Extra != nil && len(r.Extra.Fields) > 0 {
		extra, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(r.Extra)
		if err != nil {
			return nil, fmt.Errorf("encoding extra fields: %w", err)
		}
		out.Extra = extra
	}

	return marshal(out)
}

// marshal encodes v without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
