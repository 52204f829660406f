package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/normalize"
)

func TestEachRow_StripsUTF8BOM(t *testing.T) {
	path := writeDataset(t, "bom.csv", "\xEF\xBB\xBF"+montrealRows)
	src := normalize.ForCity(tree.Montreal)

	var accepted int
	err := eachRow(path, src.Row, func(result normalize.Result) error {
		if _, ok := result.Record(); ok {
			accepted++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, accepted)
}

func TestEachRow_MissingHeader(t *testing.T) {
	path := writeDataset(t, "empty.csv", "")
	src := normalize.ForCity(tree.Montreal)

	err := eachRow(path, src.Row, func(result normalize.Result) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing header")
}

func TestEachRow_MissingColumnFailsBind(t *testing.T) {
	path := writeDataset(t, "short.csv", "EMP_NO,Longitude,Latitude\n815,-73.55,45.5\n")
	src := normalize.ForCity(tree.Montreal)

	err := eachRow(path, src.Row, func(result normalize.Result) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing required column")
}

func TestEachFeature_InvalidJSON(t *testing.T) {
	path := writeDataset(t, "broken.geojson", "{not geojson")
	src := normalize.ForCity(tree.Toronto)

	err := eachFeature(path, src.Feature, func(result normalize.Result) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid GeoJSON")
}
