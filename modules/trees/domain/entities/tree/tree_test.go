package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCity(t *testing.T) {
	city, err := ParseCity("toronto")
	require.NoError(t, err)
	require.Equal(t, Toronto, city)

	_, err = ParseCity("Toronto")
	require.Error(t, err)

	_, err = ParseCity("gotham")
	require.Error(t, err)
	require.Contains(t, err.Error(), "gotham")
}

func TestConfig_EveryCityHasOne(t *testing.T) {
	seen := map[string]struct{}{}
	for _, city := range Cities() {
		cfg := city.Config()
		require.Equal(t, city, cfg.City)
		require.NotEmpty(t, cfg.SourceName)
		require.Contains(t, []Format{FormatGeoJSON, FormatCSV}, cfg.Format)

		// source names are the deduplication key across cities
		_, dup := seen[cfg.SourceName]
		require.False(t, dup, "duplicate source name %q", cfg.SourceName)
		seen[cfg.SourceName] = struct{}{}
	}
}

func TestConfig_Formats(t *testing.T) {
	require.Equal(t, FormatCSV, Montreal.Config().Format)
	require.Equal(t, FormatCSV, Calgary.Config().Format)
	require.Equal(t, FormatGeoJSON, Toronto.Config().Format)
}

func TestConfig_Enrichments(t *testing.T) {
	toronto := Toronto.Config()
	require.Equal(t, []EnrichmentTag{EnrichWikipediaLinks, EnrichHumanNames}, toronto.Enrichments)

	require.Empty(t, Waterloo.Config().Enrichments)
	require.Contains(t, Calgary.Config().Enrichments, EnrichTreeCondition)
}
