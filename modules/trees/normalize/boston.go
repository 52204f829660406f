package normalize

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Boston uses "--" as a diameter placeholder and pads addresses with
// whitespace.
type bostonNormalizer struct {
	source string
}

func (n *bostonNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("boston feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("boston feature %d: %w", objectID, err))
	}
	return Accepted(tree.Record{
		Source:     n.source,
		ObjectID:   objectID,
		Address:    CleanText(props["address"]),
		Streetname: TextValue(props["street"]),
		Suffix:     TextValue(props["suffix"]),
		Ward:       TextValue(props["neighborhood"]),
		Botanical:  TextValue(props["spp_bot"]),
		Common:     TextValue(props["spp_com"]),
		DBH:        RoundedDiameter(props["dbh"]),
		Geometry:   geom,
	})
}
