package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// ToMultiPoint wraps a Point in a single-member MultiPoint. Other geometry
// types pass through unchanged. The input is never mutated.
func ToMultiPoint(g orb.Geometry) orb.Geometry {
	if p, ok := g.(orb.Point); ok {
		return orb.MultiPoint{p}
	}
	return g
}

// GeometryJSON renders a geometry as a GeoJSON document string, the form
// ST_GeomFromGeoJSON consumes.
func GeometryJSON(g orb.Geometry) (string, error) {
	raw, err := json.Marshal(geojson.NewGeometry(g))
	if err != nil {
		return "", fmt.Errorf("failed to encode geometry: %w", err)
	}
	return string(raw), nil
}

// FeatureGeometryJSON returns a feature's geometry coerced to MultiPoint.
func FeatureGeometryJSON(f *geojson.Feature) (string, error) {
	if f.Geometry == nil {
		return "", fmt.Errorf("feature has no geometry")
	}
	return GeometryJSON(ToMultiPoint(f.Geometry))
}

// CoordinateGeometryJSON builds a MultiPoint document from one lon/lat pair.
func CoordinateGeometryJSON(lon, lat float64) (string, error) {
	return GeometryJSON(orb.MultiPoint{{lon, lat}})
}

// WKTGeometryJSON parses a WKT value such as "POINT (-114.1 51.0)" and
// renders it coerced to MultiPoint.
func WKTGeometryJSON(s string) (string, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return "", fmt.Errorf("invalid WKT geometry %q: %w", s, err)
	}
	return GeometryJSON(ToMultiPoint(g))
}
