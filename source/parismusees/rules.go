package parismusees

import (
	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
	"github.com/lehigh-university-libraries/museumwalk/value"
)

// PlaceOfCreation is recorded for every entity: the harvest only queries
// works whose production place is China.
const PlaceOfCreation = "Chine"

func stripHTML(s string) string {
	return value.Clean(s, value.WithStripHTML())
}

// Rules is the Paris Musées extraction table.
//
// Dimension entries are read by raw position as height, width, length.
var Rules = &source.Ruleset{
	Source: hub.SourceParisMusees,
	Rules: []source.Rule{
		source.At(hub.FieldExternalID, "absolutePath"),
		source.At(hub.FieldTitle, "title"),
		source.At(hub.FieldInventoryNumber, "fieldOeuvreNumInventaire"),
		source.At(hub.FieldCreationLabel, "fieldOeuvreSiecle/entity/entityLabel"),
		source.At(hub.FieldBeginYear, "fieldDateProduction/startYear"),
		source.At(hub.FieldEndYear, "fieldDateProduction/endYear"),
		{Field: hub.FieldPlaceOfCreation, Const: PlaceOfCreation},
		source.At(hub.FieldCreator,
			"fieldAuteurAuteur/entity/entityLabel",
			"fieldOeuvreAuteurs[0]/entity/fieldAuteurAuteur/entity/entityLabel",
		),
		{
			Field:     hub.FieldObjectDescription,
			Paths:     source.Paths("fieldOeuvreDescriptionIcono/value"),
			Transform: stripHTML,
		},
		source.At(hub.FieldCurrentLocation, "queryFieldMusee/entities[0]/entityLabel"),
	},
	Materials: source.ListRule{
		Path:        value.MustPath("queryFieldMateriauxTechnique/entities[*]/entityLabel"),
		Placeholder: true,
		Field:       value.MustPath("queryFieldMateriauxTechnique"),
	},
	Dimensions: source.DimensionRule{
		Entries: value.MustPath("fieldOeuvreDimensions[*]"),
		Value:   value.MustPath("entity/fieldDimensionValeur"),
		Unit:    value.MustPath("entity/fieldDimensionUnite/entity/entityLabel"),
		Axes:    []hub.Axis{hub.AxisHeight, hub.AxisWidth, hub.AxisLength},
	},
	Transfer: &source.TransferRule{
		When: value.MustPath("queryFieldDonateurs"),
		Rules: []source.Rule{
			source.At(hub.FieldModeOfTransfer, "queryFieldModaliteAcquisition/entities[0]/entityLabel"),
			source.At(hub.FieldTransferBeginning, "fieldDateAcquisition/startYear"),
			source.At(hub.FieldTransferEnd, "fieldDateAcquisition/endYear"),
			source.At(hub.FieldPreviousOwner, "queryFieldDonateurs/entities[0]/entityLabel"),
		},
	},
	Extras: []source.ExtraRule{
		{Key: "entityUuid", Path: value.MustPath("entityUuid")},
		{Key: "objectType", Path: value.MustPath("fieldOeuvreTypesObjet/entity/entityLabel")},
		{Key: "period", Path: value.MustPath("fieldOeuvreEpoquePeriode/entity/entityLabel")},
		{Key: "denominations", Path: value.MustPath("fieldDenominations[*]/entity/entityLabel"), Many: true},
	},
}
