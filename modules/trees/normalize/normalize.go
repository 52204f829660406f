// Package normalize turns raw city dataset records into canonical
// street_trees rows. Each supported city has exactly one normalizer; the
// dispatch in ForCity is exhaustive over tree.Cities().
package normalize

import (
	"github.com/paulmach/orb/geojson"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

type resultKind int

const (
	kindAccepted resultKind = iota
	kindSkipped
	kindRejected
)

// Result is the outcome of normalizing one raw record. Exactly one of the
// three states holds: the record was accepted, skipped with a reason, or
// rejected with an error that aborts the run.
type Result struct {
	kind   resultKind
	record tree.Record
	reason string
	err    error
}

func Accepted(record tree.Record) Result {
	return Result{kind: kindAccepted, record: record}
}

func Skipped(reason string) Result {
	return Result{kind: kindSkipped, reason: reason}
}

func Rejected(err error) Result {
	return Result{kind: kindRejected, err: err}
}

func (r Result) Record() (tree.Record, bool) {
	return r.record, r.kind == kindAccepted
}

func (r Result) SkipReason() (string, bool) {
	return r.reason, r.kind == kindSkipped
}

func (r Result) Err() error {
	if r.kind != kindRejected {
		return nil
	}
	return r.err
}

// FeatureNormalizer normalizes one GeoJSON feature.
type FeatureNormalizer interface {
	Normalize(feature *geojson.Feature) Result
}

// RowNormalizer normalizes one CSV row. Bind resolves the columns the
// normalizer needs against the file header before the first row.
type RowNormalizer interface {
	Bind(header map[string]int) error
	Normalize(row []string) Result
}

// Source bundles a city's configuration with its normalizer. Exactly one
// of Feature and Row is set, matching Config.Format.
type Source struct {
	Config  tree.SourceConfig
	Feature FeatureNormalizer
	Row     RowNormalizer
}

// ForCity returns the normalizer for a supported city.
func ForCity(city tree.City) Source {
	cfg := city.Config()
	switch city {
	case tree.Toronto:
		return Source{Config: cfg, Feature: &torontoNormalizer{source: cfg.SourceName}}
	case tree.Ottawa:
		return Source{Config: cfg, Feature: &ottawaNormalizer{source: cfg.SourceName}}
	case tree.Montreal:
		return Source{Config: cfg, Row: &montrealNormalizer{source: cfg.SourceName}}
	case tree.Calgary:
		return Source{Config: cfg, Row: &calgaryNormalizer{source: cfg.SourceName}}
	case tree.Waterloo:
		return Source{Config: cfg, Feature: &waterlooNormalizer{source: cfg.SourceName}}
	case tree.Boston:
		return Source{Config: cfg, Feature: &bostonNormalizer{source: cfg.SourceName}}
	case tree.Markham:
		return Source{Config: cfg, Feature: &markhamNormalizer{source: cfg.SourceName}}
	case tree.Oakville:
		return Source{Config: cfg, Feature: &oakvilleNormalizer{source: cfg.SourceName}}
	case tree.Peterborough:
		return Source{Config: cfg, Feature: &peterboroughNormalizer{source: cfg.SourceName}}
	}
	panic("no normalizer for city " + string(city))
}
