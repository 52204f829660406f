package persistence

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
)

func TestTreeRepository_DeleteBySource(t *testing.T) {
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "DELETE FROM street_trees WHERE source = $1")
			require.Equal(t, []any{"Boston Open Data Tree Inventory"}, args)
			return pgconn.NewCommandTag("DELETE 38000"), nil
		},
	}

	repo := NewTreeRepository()
	deleted, err := repo.DeleteBySource(txContext(tx), "Boston Open Data Tree Inventory")
	require.NoError(t, err)
	require.Equal(t, int64(38000), deleted)
}

func TestTreeRepository_CountBySource(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "COUNT(*) FROM street_trees WHERE source = $1")
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*int64) = 612
				return nil
			}}
		},
	}

	repo := NewTreeRepository()
	count, err := repo.CountBySource(txContext(tx), "x")
	require.NoError(t, err)
	require.Equal(t, int64(612), count)
}

func TestTreeRepository_Nearest_WithoutRadius(t *testing.T) {
	common := "Norway Maple"
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.NotContains(t, sql, "ST_DWithin")
			require.Contains(t, sql, "ORDER BY geom <-> ST_SetSRID(ST_MakePoint($3, $4), 4326)")
			require.Contains(t, sql, "LIMIT $5")
			require.Equal(t, []any{-79.38, 43.65, -79.38, 43.65, 10}, args)
			return &stubRows{data: [][]any{
				{
					"Toronto Open Data Street Trees", int64(101), &common, (*string)(nil),
					(*string)(nil), (*string)(nil), (*float64)(nil), (*string)(nil),
					12.5, -79.38, 43.65,
				},
			}}, nil
		},
	}

	repo := NewTreeRepository()
	results, err := repo.Nearest(txContext(tx), &tree.NearestParams{Lat: 43.65, Lng: -79.38, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, int64(101), results[0].ObjectID)
	require.Equal(t, "Norway Maple", *results[0].Common)
	require.Equal(t, 12.5, results[0].DistanceM)
	require.Equal(t, -79.38, results[0].Longitude)
}

func TestTreeRepository_Nearest_WithRadius(t *testing.T) {
	radius := 250.0
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "ST_DWithin")
			require.Contains(t, sql, "ORDER BY geom <-> ST_SetSRID(ST_MakePoint($6, $7), 4326)")
			require.Contains(t, sql, "LIMIT $8")
			require.Equal(t, []any{-79.38, 43.65, -79.38, 43.65, 250.0, -79.38, 43.65, 5}, args)
			return &stubRows{}, nil
		},
	}

	repo := NewTreeRepository()
	results, err := repo.Nearest(txContext(tx), &tree.NearestParams{
		Lat: 43.65, Lng: -79.38, Limit: 5, MaxDistanceM: &radius,
	})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestTreeRepository_Enrichments(t *testing.T) {
	var executed []string
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			executed = append(executed, sql)
			return pgconn.CommandTag{}, nil
		},
	}
	ctx := txContext(tx)

	repo := NewTreeRepository()
	require.NoError(t, repo.LinkWikipedia(ctx))
	require.NoError(t, repo.ApplyReadableNames(ctx))
	require.NoError(t, repo.Analyze(ctx))

	require.Len(t, executed, 3)
	require.Contains(t, executed[0], "wikipedia_url")
	require.Contains(t, executed[1], "readable_name")
	require.Contains(t, executed[2], "ANALYZE street_trees")
}
