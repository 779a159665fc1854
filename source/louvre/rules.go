package louvre

import (
	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/source"
	"github.com/lehigh-university-libraries/museumwalk/value"
)

// Rules is the Louvre extraction table.
//
// Dimension entries are read by raw position as width, height, length; an
// entry without a displayDimension still takes its slot. The materials
// prose is kept whole here, the resolver extracts the material from it.
var Rules = &source.Ruleset{
	Source: hub.SourceLouvre,
	Rules: []source.Rule{
		source.At(hub.FieldExternalID, "url"),
		source.At(hub.FieldTitle, "title"),
		source.At(hub.FieldInventoryNumber, "objectNumber[0]/value"),
		source.At(hub.FieldCreationLabel, "dateCreated[0]/text"),
		source.At(hub.FieldBeginYear, "dateCreated[0]/startYear"),
		source.At(hub.FieldEndYear, "dateCreated[0]/endYear"),
		source.At(hub.FieldPlaceOfCreation, "placeOfCreation"),
		source.At(hub.FieldCreator, "creator[0]/label"),
		source.At(hub.FieldCollection, "collection"),
		source.At(hub.FieldObjectDescription, "description"),
		source.At(hub.FieldOwner, "ownedBy"),
		source.At(hub.FieldCurrentPermanentCustodian, "heldBy"),
		source.At(hub.FieldCurrentCustodian, "longTermLoanTo"),
		source.At(hub.FieldCurrentLocation, "currentLocation"),
		source.At(hub.FieldExhibition, "exhibition[0]/value"),
	},
	Materials: source.ListRule{
		Path:        value.MustPath("materialsAndTechniques"),
		Placeholder: true,
	},
	Dimensions: source.DimensionRule{
		Entries: value.MustPath("dimension[*]"),
		Value:   value.MustPath("displayDimension"),
		Axes:    []hub.Axis{hub.AxisWidth, hub.AxisHeight, hub.AxisLength},
	},
	Transfer: &source.TransferRule{
		When: value.MustPath("acquisitionDetails"),
		Rules: []source.Rule{
			source.At(hub.FieldModeOfTransfer, "acquisitionDetails[0]/mode"),
			source.At(hub.FieldTransferBeginning, "acquisitionDetails[0]/dates[0]/startYear"),
			source.At(hub.FieldTransferEnd, "acquisitionDetails[0]/dates[0]/endYear"),
			source.At(hub.FieldPreviousOwner, "previousOwner[0]/value"),
		},
	},
	Extras: []source.ExtraRule{
		{Key: "arkId", Path: value.MustPath("arkId")},
		{Key: "objectType", Path: value.MustPath("objectType")},
		{Key: "modified", Path: value.MustPath("modified")},
	},
}
