package normalize

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Oakville publishes "Common Name - Botanical name" in one SPECIES field
// and splits the street address over two attributes.
type oakvilleNormalizer struct {
	source string
}

func (n *oakvilleNormalizer) Normalize(feature *geojson.Feature) Result {
	props := feature.Properties
	objectID, err := ObjectID(props["OBJECTID"])
	if err != nil {
		return Rejected(fmt.Errorf("oakville feature: %w", err))
	}
	geom, err := FeatureGeometryJSON(feature)
	if err != nil {
		return Rejected(fmt.Errorf("oakville feature %d: %w", objectID, err))
	}

	streetNumber := CleanText(props["STREET_NUMBER"])
	streetName := CleanText(props["STREET_NAME"])
	var address *string
	parts := make([]string, 0, 2)
	if streetNumber != nil {
		parts = append(parts, *streetNumber)
	}
	if streetName != nil {
		parts = append(parts, *streetName)
	}
	if len(parts) > 0 {
		joined := strings.Join(parts, " ")
		address = &joined
	}

	species := CleanText(props["SPECIES"])
	common := species
	var botanical *string
	if species != nil {
		if before, after, found := strings.Cut(*species, " - "); found {
			common = CleanText(before)
			botanical = CleanText(after)
		}
	}

	return Accepted(tree.Record{
		Source:       n.source,
		ObjectID:     objectID,
		Address:      address,
		Streetname:   streetName,
		CrossStreet1: CleanText(props["CROSS_ROADS"]),
		Site:         CleanText(props["LOCSITE"]),
		Ward:         CleanText(props["FORESTRY_ZONE"]),
		Botanical:    botanical,
		Common:       common,
		DBH:          RawDiameter(props["DBH"]),
		Geometry:     geom,
	})
}
