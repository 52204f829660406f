package normalize

import (
	"fmt"
	"strconv"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

// Montreal ships a CSV with French column names and per-row longitude and
// latitude columns instead of a geometry document. Rows without
// coordinates are skipped.
type montrealNormalizer struct {
	source string

	empNo        int
	arrondNom    int
	localisation int
	emplacement  int
	essenceLatin int
	essenceFr    int
	essenceAng   int
	dhp          int
	longitude    int
	latitude     int
}

func (n *montrealNormalizer) Bind(header map[string]int) error {
	cols := map[string]*int{
		"EMP_NO":        &n.empNo,
		"ARROND_NOM":    &n.arrondNom,
		"LOCALISATION":  &n.localisation,
		"Emplacement":   &n.emplacement,
		"Essence_latin": &n.essenceLatin,
		"Essence_fr":    &n.essenceFr,
		"ESSENCE_ANG":   &n.essenceAng,
		"DHP":           &n.dhp,
		"Longitude":     &n.longitude,
		"Latitude":      &n.latitude,
	}
	for name, dst := range cols {
		idx, ok := header[name]
		if !ok {
			return fmt.Errorf("missing required column %q", name)
		}
		*dst = idx
	}
	return nil
}

func (n *montrealNormalizer) Normalize(row []string) Result {
	lon := column(row, n.longitude)
	lat := column(row, n.latitude)
	if lon == "" || lat == "" {
		return Skipped("missing coordinates")
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Rejected(fmt.Errorf("montreal row: invalid longitude %q", lon))
	}
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Rejected(fmt.Errorf("montreal row: invalid latitude %q", lat))
	}

	objectID, err := ObjectID(column(row, n.empNo))
	if err != nil {
		return Rejected(fmt.Errorf("montreal row: %w", err))
	}

	var dbh *float64
	if raw := column(row, n.dhp); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Rejected(fmt.Errorf("montreal row %d: invalid diameter %q", objectID, raw))
		}
		dbh = RoundedDiameter(f)
	}

	geom, err := CoordinateGeometryJSON(lonF, latF)
	if err != nil {
		return Rejected(fmt.Errorf("montreal row %d: %w", objectID, err))
	}

	common := fmt.Sprintf("%s (%s)", column(row, n.essenceFr), column(row, n.essenceAng))
	return Accepted(tree.Record{
		Source:     n.source,
		ObjectID:   objectID,
		Ward:       TextValue(column(row, n.arrondNom)),
		Streetname: TextValue(column(row, n.localisation)),
		Site:       TextValue(column(row, n.emplacement)),
		Botanical:  TextValue(column(row, n.essenceLatin)),
		Common:     &common,
		DBH:        dbh,
		Geometry:   geom,
	})
}

func column(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
