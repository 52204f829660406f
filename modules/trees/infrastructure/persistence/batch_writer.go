package persistence

import (
	"context"
	"fmt"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/pkg/composables"
)

// One statement per flush: every column travels as an array and unnest
// rebuilds the rows server-side. This keeps a full batch inside a single
// round trip and well below the wire protocol's parameter limit.
const insertTreesSQL = `
INSERT INTO street_trees (
	source, objectid, structid, address, streetname, crossstreet1, crossstreet2, suffix,
	unit_number, tree_position_number, site, ward, botanical_name, common_name, dbh_trunk, geom
)
SELECT
	t.source, t.objectid, t.structid, t.address, t.streetname, t.crossstreet1, t.crossstreet2, t.suffix,
	t.unit_number, t.tree_position_number, t.site, t.ward, t.botanical_name, t.common_name, t.dbh_trunk,
	ST_SetSRID(ST_GeomFromGeoJSON(t.geom), 4326)
FROM unnest(
	$1::text[], $2::bigint[], $3::text[], $4::text[], $5::text[], $6::text[], $7::text[], $8::text[],
	$9::text[], $10::text[], $11::text[], $12::text[], $13::text[], $14::text[], $15::float8[], $16::text[]
) AS t(
	source, objectid, structid, address, streetname, crossstreet1, crossstreet2, suffix,
	unit_number, tree_position_number, site, ward, botanical_name, common_name, dbh_trunk, geom
)
ON CONFLICT (source, objectid) DO NOTHING`

// BatchWriter buffers canonical records and writes them in batches.
// Conflicting (source, objectid) pairs are dropped by the database, so the
// first accepted record for a key wins.
type BatchWriter struct {
	batchSize int
	buf       []tree.Record
	flushes   int
	buffered  int
}

func NewBatchWriter(batchSize int) *BatchWriter {
	if batchSize < 1 {
		batchSize = 1
	}
	return &BatchWriter{
		batchSize: batchSize,
		buf:       make([]tree.Record, 0, batchSize),
	}
}

// Add buffers one record, flushing when the buffer reaches the batch size.
func (w *BatchWriter) Add(ctx context.Context, record tree.Record) error {
	w.buf = append(w.buf, record)
	w.buffered++
	if len(w.buf) >= w.batchSize {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes all buffered records in one statement. Flushing an empty
// buffer is a no-op.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	n := len(w.buf)
	sources := make([]string, n)
	objectIDs := make([]int64, n)
	structIDs := make([]*string, n)
	addresses := make([]*string, n)
	streetnames := make([]*string, n)
	crossStreet1s := make([]*string, n)
	crossStreet2s := make([]*string, n)
	suffixes := make([]*string, n)
	unitNumbers := make([]*string, n)
	positions := make([]*string, n)
	sites := make([]*string, n)
	wards := make([]*string, n)
	botanicals := make([]*string, n)
	commons := make([]*string, n)
	dbhs := make([]*float64, n)
	geoms := make([]string, n)

	for i, rec := range w.buf {
		sources[i] = rec.Source
		objectIDs[i] = rec.ObjectID
		structIDs[i] = rec.StructID
		addresses[i] = rec.Address
		streetnames[i] = rec.Streetname
		crossStreet1s[i] = rec.CrossStreet1
		crossStreet2s[i] = rec.CrossStreet2
		suffixes[i] = rec.Suffix
		unitNumbers[i] = rec.UnitNumber
		positions[i] = rec.Position
		sites[i] = rec.Site
		wards[i] = rec.Ward
		botanicals[i] = rec.Botanical
		commons[i] = rec.Common
		dbhs[i] = rec.DBH
		geoms[i] = rec.Geometry
	}

	if _, err := tx.Exec(
		ctx,
		insertTreesSQL,
		sources,
		objectIDs,
		structIDs,
		addresses,
		streetnames,
		crossStreet1s,
		crossStreet2s,
		suffixes,
		unitNumbers,
		positions,
		sites,
		wards,
		botanicals,
		commons,
		dbhs,
		geoms,
	); err != nil {
		return fmt.Errorf("failed to write batch of %d records: %w", n, err)
	}

	w.buf = w.buf[:0]
	w.flushes++
	return nil
}

// Flushes returns how many non-empty batches have been written.
func (w *BatchWriter) Flushes() int {
	return w.flushes
}

// Buffered returns the total number of records accepted by Add.
func (w *BatchWriter) Buffered() int {
	return w.buffered
}
