package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Peterborough publishes no diameter at all.
type peterboroughNormalizer struct {
	source string
}

func (n *peterboroughNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("peterborough feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("peterborough feature %d: %w", objectID, err))
	}

	site := TextValue(props["INVENTORY_LOC"])
	if site == nil || *site == "" {
		site = TextValue(props["TREE_LOCATION"])
	}

	return Accepted(tree.Record{
		Source:     n.source,
		ObjectID:   objectID,
		Address:    TextValue(props["ADDNUM"]),
		Streetname: TextValue(props["STREET"]),
		Site:       site,
		Ward:       TextValue(props["ZONE"]),
		Botanical:  TextValue(props["BOTANICAL"]),
		Common:     TextValue(props["COMMON"]),
		Geometry:   geom,
	})
}
