package linkedart

import (
	"context"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/mapping"
)

// Resolver turns a free-text label into a vocabulary URI. Implementations
// must always answer, using a sentinel URI when nothing matches.
type Resolver interface {
	Resolve(ctx context.Context, source hub.SourceID, category mapping.Category, label string) string
}

// Mapper converts intermediate records to Linked Art objects.
type Mapper struct {
	Resolver Resolver
}

// NewMapper creates a Mapper that resolves labels with r.
func NewMapper(r Resolver) *Mapper {
	return &Mapper{Resolver: r}
}

// Map builds the Linked Art object for rec. Every entity-bearing label is
// resolved once; the source label is kept beside the URI.
func (m *Mapper) Map(ctx context.Context, rec *hub.Record) *Object {
	title := rec.Title.Label()

	obj := &Object{
		Context: Context,
		ID:      rec.ExternalID.Value,
		Type:    TypeHumanMadeObject,
		Label:   title,
		IdentifiedBy: []Identifier{
			{
				Type:         TypeName,
				ClassifiedAs: []Reference{Artwork, PrimaryName},
				Content:      &title,
				Language:     []Reference{French},
			},
			{
				Type:         TypeIdentifier,
				ClassifiedAs: []Reference{AccessionNumber},
				Content:      rec.InventoryNumber.Ptr(),
			},
		},
		ProducedBy: []Production{
			{
				Type: TypeProduction,
				Timespan: TimeSpan{
					Type:            TypeTimeSpan,
					Label:           rec.Timespan.CreationLabel.Label(),
					BeginOfTheBegin: rec.Timespan.BeginYear.Label(),
					EndOfTheEnd:     rec.Timespan.EndYear.Label(),
				},
				TookPlaceAt:  []Reference{m.ref(ctx, rec, mapping.CategoryTookPlaceAt, TypePlace, rec.PlaceOfCreation)},
				CarriedOutBy: []Reference{m.ref(ctx, rec, mapping.CategoryCarriedOutBy, "", rec.Creator)},
			},
		},
		MemberOf:  []Reference{m.ref(ctx, rec, mapping.CategoryMemberOf, TypeSet, rec.Collection)},
		MadeOf:    make([]Reference, 0, len(rec.Materials)),
		Dimension: m.dimensions(ctx, rec),
		ReferredToBy: []LinguisticObject{
			{
				Type:         TypeLinguisticObject,
				ClassifiedAs: []Reference{Description},
				Content:      rec.ObjectDescription.Ptr(),
			},
		},
		CurrentOwner:              []Reference{m.ref(ctx, rec, mapping.CategoryCurrentOwner, TypeGroup, rec.Owner)},
		CurrentPermanentCustodian: m.ref(ctx, rec, mapping.CategoryCurrentPermanentCustodian, TypeGroup, rec.CurrentPermanentCustodian),
		CurrentCustodian:          []Reference{m.ref(ctx, rec, mapping.CategoryCurrentCustodian, TypeGroup, rec.CurrentCustodian)},
		CurrentLocation:           []Reference{m.ref(ctx, rec, mapping.CategoryCurrentLocation, TypePlace, rec.CurrentLocation)},
	}

	for _, material := range rec.Materials {
		obj.MadeOf = append(obj.MadeOf, m.ref(ctx, rec, mapping.CategoryMadeOf, TypeMaterial, material))
	}

	if t := rec.ChangedOwnershipThrough; t != nil {
		obj.ChangedOwnershipThrough = []Acquisition{
			{
				Type:  TypeAcquisition,
				Label: t.ModeOfTransfer.Label(),
				Timespan: TimeSpan{
					Type:            TypeTimeSpan,
					BeginOfTheBegin: t.TimespanBeginning.Label(),
					EndOfTheEnd:     t.TimespanEnd.Label(),
				},
				TransferredTitleFrom: []Reference{m.ref(ctx, rec, mapping.CategoryTransferredTitleFrom, "", t.PreviousOwner)},
			},
		}
	}

	if rec.Exhibition.Valid {
		obj.MemberOf = append(obj.MemberOf, m.ref(ctx, rec, mapping.CategoryExhibition, TypeSet, rec.Exhibition))
	}

	return obj
}

// dimensions always returns width, height and length, in that order.
func (m *Mapper) dimensions(ctx context.Context, rec *hub.Record) []Dimension {
	classes := map[hub.Axis]Reference{
		hub.AxisWidth:  Width,
		hub.AxisHeight: Height,
		hub.AxisLength: Length,
	}

	dims := make([]Dimension, 0, 3)
	for _, axis := range hub.Axes() {
		v, unit := rec.Dimension(axis)
		dims = append(dims, Dimension{
			Type:         TypeDimension,
			ClassifiedAs: []Reference{classes[axis]},
			Value:        Measure{Text: v.Value, Valid: v.Valid},
			Unit:         m.ref(ctx, rec, mapping.CategoryUnit, TypeMeasurementUnit, hub.TextOf(unit)),
		})
	}
	return dims
}

func (m *Mapper) ref(ctx context.Context, rec *hub.Record, category mapping.Category, typ string, label hub.Text) Reference {
	var uri string
	switch {
	case m.Resolver != nil:
		uri = m.Resolver.Resolve(ctx, rec.Source, category, label.Label())
	case label.Valid:
		uri = mapping.NotFoundURI
	default:
		uri = mapping.NotSpecifiedURI
	}
	return Reference{
		ID:    uri,
		Type:  typ,
		Label: label.Label(),
	}
}
