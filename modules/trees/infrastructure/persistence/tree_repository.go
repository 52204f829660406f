package persistence

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence/models"
	"github.com/drzewo/drzewo/pkg/composables"
)

type TreeRepository struct{}

func NewTreeRepository() *TreeRepository {
	return &TreeRepository{}
}

// DeleteBySource removes every row previously imported for the source.
func (r *TreeRepository) DeleteBySource(ctx context.Context, sourceName string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM street_trees WHERE source = $1", sourceName)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to delete rows for source %q", sourceName)
	}
	return tag.RowsAffected(), nil
}

// CountBySource returns how many rows are currently stored for the source.
func (r *TreeRepository) CountBySource(ctx context.Context, sourceName string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM street_trees WHERE source = $1", sourceName).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows for source %q", sourceName)
	}
	return count, nil
}

// Analyze refreshes planner statistics after bulk writes so
// nearest-neighbor plans stay fast. Runs outside the import transaction.
func (r *TreeRepository) Analyze(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "ANALYZE street_trees"); err != nil {
		return errors.Wrap(err, "failed to analyze street_trees")
	}
	return nil
}

// LinkWikipedia copies species article links onto matching rows.
func (r *TreeRepository) LinkWikipedia(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE street_trees
		SET wikipedia_url = sub.wikipedia_url
		FROM species_links sub
		WHERE street_trees.common_name = sub.common_name`)
	if err != nil {
		return errors.Wrap(err, "failed to link wikipedia articles")
	}
	return nil
}

// ApplyReadableNames rewrites raw vendor species names into their curated
// human-readable form.
func (r *TreeRepository) ApplyReadableNames(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE street_trees
		SET common_name = sub.readable_name
		FROM species_names sub
		WHERE street_trees.common_name = sub.original_common_name`)
	if err != nil {
		return errors.Wrap(err, "failed to apply readable names")
	}
	return nil
}

// Nearest returns the trees closest to a point, ordered by distance.
func (r *TreeRepository) Nearest(ctx context.Context, params *tree.NearestParams) ([]*tree.NearbyTree, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where := ""
	args := []interface{}{params.Lng, params.Lat}
	if params.MaxDistanceM != nil {
		where = `
			WHERE ST_DWithin(
				geom::geography,
				ST_MakePoint($3, $4)::geography,
				$5
			)`
		args = append(args, params.Lng, params.Lat, *params.MaxDistanceM)
	}
	args = append(args, params.Lng, params.Lat, params.Limit)
	orderArg := len(args) - 1
	limitArg := len(args)

	query := fmt.Sprintf(`
		SELECT source, objectid, common_name, botanical_name, address, streetname,
			dbh_trunk, tree_position_number,
			ST_Distance(geom::geography, ST_MakePoint($1, $2)::geography) AS distance,
			ST_X(ST_GeometryN(geom, 1)) AS longitude, ST_Y(ST_GeometryN(geom, 1)) AS latitude
		FROM street_trees
		%s
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($%d, $%d), 4326)
		LIMIT $%d`, where, orderArg-1, orderArg, limitArg)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "nearest query failed")
	}
	defer rows.Close()

	var results []*tree.NearbyTree
	for rows.Next() {
		var row models.NearbyTree
		if err := rows.Scan(
			&row.Source,
			&row.ObjectID,
			&row.CommonName,
			&row.Botanical,
			&row.Address,
			&row.Streetname,
			&row.DBHTrunk,
			&row.Position,
			&row.Distance,
			&row.Longitude,
			&row.Latitude,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainNearbyTree(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
