package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Waterloo encodes missing diameters as the literal string "null".
type waterlooNormalizer struct {
	source string
}

func (n *waterlooNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["ASSET_ID"])
	if err != nil {
		return Rejected(fmt.Errorf("waterloo feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("waterloo feature %d: %w", objectID, err))
	}
	return Accepted(tree.Record{
		Source:    n.source,
		ObjectID:  objectID,
		Address:   TextValue(props["ADDRESS"]),
		Common:    TextValue(props["COM_NAME"]),
		Botanical: TextValue(props["LATIN_NAME"]),
		DBH:       RawDiameter(props["DBH_CM"]),
		Geometry:  geom,
	})
}
