package tree

import "fmt"

// City identifies one of the supported municipal inventories. The set is
// closed: adding a city means adding a constant here and a normalizer for
// it, and the compiler will point at every switch that needs extending.
type City string

const (
	Toronto      City = "toronto"
	Ottawa       City = "ottawa"
	Montreal     City = "montreal"
	Calgary      City = "calgary"
	Waterloo     City = "waterloo"
	Boston       City = "boston"
	Markham      City = "markham"
	Oakville     City = "oakville"
	Peterborough City = "peterborough"
)

// Cities returns all supported cities in stable order.
func Cities() []City {
	return []City{
		Toronto, Ottawa, Montreal, Calgary, Waterloo,
		Boston, Markham, Oakville, Peterborough,
	}
}

// ParseCity validates a city name given on the command line.
func ParseCity(s string) (City, error) {
	for _, c := range Cities() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown city %q", s)
}

// EnrichmentTag names a post-load enrichment pass.
type EnrichmentTag string

const (
	EnrichWikipediaLinks EnrichmentTag = "wikipedia_links"
	EnrichHumanNames     EnrichmentTag = "human_readable_names"
	EnrichTreeCondition  EnrichmentTag = "tree_condition"
)

// SourceConfig is the immutable per-city configuration: the dataset format,
// the value written to street_trees.source and the enrichment passes that
// run after the load.
type SourceConfig struct {
	City        City
	Format      Format
	SourceName  string
	Enrichments []EnrichmentTag
}

// Format is the on-disk shape of a city dataset.
type Format string

const (
	FormatGeoJSON Format = "geojson"
	FormatCSV     Format = "csv"
)

// Config returns the source configuration for a city.
func (c City) Config() SourceConfig {
	switch c {
	case Toronto:
		return SourceConfig{
			City:        c,
			Format:      FormatGeoJSON,
			SourceName:  "Toronto Open Data Street Trees",
			Enrichments: []EnrichmentTag{EnrichWikipediaLinks, EnrichHumanNames},
		}
	case Ottawa:
		return SourceConfig{
			City:        c,
			Format:      FormatGeoJSON,
			SourceName:  "Ottawa Open Data Tree Inventory",
			Enrichments: []EnrichmentTag{EnrichWikipediaLinks},
		}
	case Montreal:
		return SourceConfig{
			City:        c,
			Format:      FormatCSV,
			SourceName:  "Montreal Open Data Tree Inventory",
			Enrichments: []EnrichmentTag{EnrichWikipediaLinks},
		}
	case Calgary:
		return SourceConfig{
			City:        c,
			Format:      FormatCSV,
			SourceName:  "Calgary Open Data Tree Inventory",
			Enrichments: []EnrichmentTag{EnrichTreeCondition, EnrichWikipediaLinks},
		}
	case Waterloo:
		return SourceConfig{
			City:       c,
			Format:     FormatGeoJSON,
			SourceName: "Waterloo Open Data Tree Inventory",
		}
	case Boston:
		return SourceConfig{
			City:       c,
			Format:     FormatGeoJSON,
			SourceName: "Boston Open Data Tree Inventory",
		}
	case Markham:
		return SourceConfig{
			City:       c,
			Format:     FormatGeoJSON,
			SourceName: "Markham Open Data Street Trees",
		}
	case Oakville:
		return SourceConfig{
			City:       c,
			Format:     FormatGeoJSON,
			SourceName: "Oakville Parks Tree Forestry",
		}
	case Peterborough:
		return SourceConfig{
			City:       c,
			Format:     FormatGeoJSON,
			SourceName: "Peterborough Open Data Tree Inventory",
		}
	}
	panic(fmt.Sprintf("no configuration for city %q", string(c)))
}

// Record is one canonical street_trees row. Optional columns are nil when
// the source has no value for them. Geometry always holds a GeoJSON
// MultiPoint document.
type Record struct {
	Source       string
	ObjectID     int64
	StructID     *string
	Address      *string
	Streetname   *string
	CrossStreet1 *string
	CrossStreet2 *string
	Suffix       *string
	UnitNumber   *string
	Position     *string
	Site         *string
	Ward         *string
	Botanical    *string
	Common       *string
	DBH          *float64
	Geometry     string
}

// ImportProgress is published on the event bus while a load is running.
type ImportProgress struct {
	RunID     string
	City      City
	Processed int
}

// ImportCompleted is published after a run finishes, whatever the outcome.
type ImportCompleted struct {
	RunID    string
	City     City
	Status   string
	RowCount int
}
