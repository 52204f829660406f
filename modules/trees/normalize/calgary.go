package normalize

import (
	"fmt"
	"strings"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Calgary has no plain numeric identifier; the object id is synthesized
// from the digits of the WAM_ID asset tag, falling back to TREE_ASSET_CD.
// The geometry arrives as a WKT POINT column.
type calgaryNormalizer struct {
	source string

	point int

	// optional columns resolve to -1 when absent from the header
	wamID       int
	treeAssetCD int
	commonName  int
	genus       int
	species     int
	cultivar    int
	dbhCM       int
	location    int
	commCode    int
	assetSub    int
	assetType   int
}

func (n *calgaryNormalizer) Bind(header map[string]int) error {
	idx, ok := header["POINT"]
	if !ok {
		return fmt.Errorf("missing required column %q", "POINT")
	}
	n.point = idx

	optional := map[string]*int{
		"WAM_ID":          &n.wamID,
		"TREE_ASSET_CD":   &n.treeAssetCD,
		"COMMON_NAME":     &n.commonName,
		"GENUS":           &n.genus,
		"SPECIES":         &n.species,
		"CULTIVAR":        &n.cultivar,
		"DBH_CM":          &n.dbhCM,
		"LOCATION_DETAIL": &n.location,
		"COMM_CODE":       &n.commCode,
		"ASSET_SUBTYPE":   &n.assetSub,
		"ASSET_TYPE":      &n.assetType,
	}
	for name, dst := range optional {
		if idx, ok := header[name]; ok {
			*dst = idx
		} else {
			*dst = -1
		}
	}
	return nil
}

func (n *calgaryNormalizer) Normalize(row []string) Result {
	objectID, err := SyntheticObjectID(column(row, n.wamID), column(row, n.treeAssetCD))
	if err != nil {
		return Rejected(fmt.Errorf("calgary %w", err))
	}

	geom, err := WKTGeometryJSON(column(row, n.point))
	if err != nil {
		return Rejected(fmt.Errorf("calgary row %d: %w", objectID, err))
	}

	parts := make([]string, 0, 3)
	for _, idx := range []int{n.genus, n.species, n.cultivar} {
		if part := strings.TrimSpace(column(row, idx)); part != "" {
			parts = append(parts, part)
		}
	}
	var botanical *string
	if len(parts) > 0 {
		joined := strings.Join(parts, " ")
		botanical = &joined
	}

	// The site column keeps raw values, including the empty string, but
	// only when the source carries at least one of the asset columns.
	var site *string
	if n.assetSub >= 0 || n.assetType >= 0 {
		v := column(row, n.assetSub)
		if v == "" {
			v = column(row, n.assetType)
		}
		site = TextValue(v)
	}

	return Accepted(tree.Record{
		Source:     n.source,
		ObjectID:   objectID,
		StructID:   TextValue(column(row, n.treeAssetCD)),
		Address:    TextValue(column(row, n.location)),
		Streetname: TextValue(column(row, n.commCode)),
		Site:       site,
		Botanical:  botanical,
		Common:     TextValue(column(row, n.commonName)),
		DBH:        RoundedDiameter(column(row, n.dbhCM)),
		Geometry:   geom,
	})
}
