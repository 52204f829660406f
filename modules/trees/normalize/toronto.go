package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

type torontoNormalizer struct {
	source string
}

func (n *torontoNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("toronto feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("toronto feature %d: %w", objectID, err))
	}
	return Accepted(tree.Record{
		Source:       n.source,
		ObjectID:     objectID,
		StructID:     TextValue(props["STRUCTID"]),
		Address:      TextValue(props["ADDRESS"]),
		Streetname:   TextValue(props["STREETNAME"]),
		CrossStreet1: TextValue(props["CROSSSTREET1"]),
		CrossStreet2: TextValue(props["CROSSSTREET2"]),
		Suffix:       TextValue(props["SUFFIX"]),
		UnitNumber:   TextValue(props["UNIT_NUMBER"]),
		Position:     TextValue(props["TREE_POSITION_NUMBER"]),
		Site:         TextValue(props["SITE"]),
		Ward:         TextValue(props["WARD"]),
		Botanical:    TextValue(props["BOTANICAL_NAME"]),
		Common:       TextValue(props["COMMON_NAME"]),
		DBH:          RawDiameter(props["DBH_TRUNK"]),
		Geometry:     geom,
	})
}
