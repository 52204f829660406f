package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence"
)

// nearestTx extends fakeTx with a canned Query so the nearest lookup runs
// end to end and the bound arguments stay observable.
type nearestTx struct {
	fakeTx
	queryArgs []any
}

func (f *nearestTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if !strings.Contains(sql, "FROM street_trees") {
		return f.fakeTx.Query(ctx, sql, args...)
	}
	f.queryArgs = args
	return emptyRows{}, nil
}

type nearestDB struct {
	txs []*nearestTx
}

func (d *nearestDB) Begin(ctx context.Context) (pgx.Tx, error) {
	tx := &nearestTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func testLimits() NearestLimits {
	return NearestLimits{DefaultLimit: 10, MaxLimit: 100, MinRadiusM: 1, MaxRadiusM: 5000}
}

func TestNearestService_RejectsOutOfBoundsCoordinates(t *testing.T) {
	db := &nearestDB{}
	svc := NewNearestService(db, persistence.NewTreeRepository(), testLimits())

	_, err := svc.Nearest(context.Background(), 91, 0, 10, nil)
	require.ErrorIs(t, err, ErrCoordinatesOutOfBounds)

	_, err = svc.Nearest(context.Background(), 0, -181, 10, nil)
	require.ErrorIs(t, err, ErrCoordinatesOutOfBounds)

	require.Empty(t, db.txs)
}

func TestNearestService_AppliesLimitDefaultsAndClamps(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 10},
		{"negative clamps to one", -3, 1},
		{"above max clamps to max", 1000, 100},
		{"in range passes through", 25, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &nearestDB{}
			svc := NewNearestService(db, persistence.NewTreeRepository(), testLimits())

			_, err := svc.Nearest(context.Background(), 43.65, -79.38, tc.limit, nil)
			require.NoError(t, err)
			require.Len(t, db.txs, 1)
			args := db.txs[0].queryArgs
			require.Equal(t, tc.want, args[len(args)-1])
			require.Equal(t, 1, db.txs[0].commits)
		})
	}
}

func TestNearestService_ClampsRadius(t *testing.T) {
	db := &nearestDB{}
	svc := NewNearestService(db, persistence.NewTreeRepository(), testLimits())

	tooBig := 90000.0
	_, err := svc.Nearest(context.Background(), 43.65, -79.38, 10, &tooBig)
	require.NoError(t, err)
	require.Equal(t, 5000.0, db.txs[0].queryArgs[4])

	tooSmall := 0.2
	_, err = svc.Nearest(context.Background(), 43.65, -79.38, 10, &tooSmall)
	require.NoError(t, err)
	require.Equal(t, 1.0, db.txs[1].queryArgs[4])

	// the caller's value must not be rewritten in place
	require.Equal(t, 90000.0, tooBig)
}

type emptyRows struct{}

func (emptyRows) Next() bool { return false }
func (emptyRows) Scan(dest ...any) error { return nil }
func (emptyRows) Values() ([]any, error) { return nil, nil }
func (emptyRows) RawValues() [][]byte { return nil }
func (emptyRows) Err() error { return nil }
func (emptyRows) Close() {}
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Conn() *pgx.Conn { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
