package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

type markhamNormalizer struct {
	source string
}

func (n *markhamNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("markham feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("markham feature %d: %w", objectID, err))
	}
	return Accepted(tree.Record{
		Source:       n.source,
		ObjectID:     objectID,
		Streetname:   TextValue(props["ONSTREET"]),
		CrossStreet1: TextValue(props["XSTREET1"]),
		CrossStreet2: TextValue(props["XSTREET2"]),
		Site:         TextValue(props["RDSECTYPE"]),
		Ward:         TextValue(props["MUNICIPALITY"]),
		Botanical:    TextValue(props["SPECIES"]),
		Common:       TextValue(props["COMMONNAME"]),
		DBH:          RoundedDiameter(props["CURRENTDBH"]),
		Geometry:     geom,
	})
}
