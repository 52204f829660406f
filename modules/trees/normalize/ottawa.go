package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Ottawa publishes a single SPECIES attribute; it serves as both the
// botanical and the common name.
type ottawaNormalizer struct {
	source string
}

func (n *ottawaNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("ottawa feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("ottawa feature %d: %w", objectID, err))
	}
	species := TextValue(props["SPECIES"])
	return Accepted(tree.Record{
		Source:     n.source,
		ObjectID:   objectID,
		Address:    TextValue(props["ADDNUM"]),
		Streetname: TextValue(props["ADDSTR"]),
		Botanical:  species,
		Common:     species,
		DBH:        RawDiameter(props["DBH"]),
		Geometry:   geom,
	})
}
