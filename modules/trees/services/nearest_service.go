package services

import (
	"context"
	"errors"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence"
	"github.com/drzewo/drzewo/pkg/composables"
)

var ErrCoordinatesOutOfBounds = errors.New("lat/lng are out of bounds")

// NearestLimits bounds request size so query cost stays predictable.
type NearestLimits struct {
	DefaultLimit int
	MaxLimit     int
	MinRadiusM   float64
	MaxRadiusM   float64
}

type NearestService struct {
	db     composables.Pool
	trees  *persistence.TreeRepository
	limits NearestLimits
}

func NewNearestService(db composables.Pool, trees *persistence.TreeRepository, limits NearestLimits) *NearestService {
	return &NearestService{db: db, trees: trees, limits: limits}
}

// Nearest returns the trees closest to (lat, lng). A zero limit falls back
// to the configured default; limit and radius are clamped to their bounds.
func (s *NearestService) Nearest(ctx context.Context, lat, lng float64, limit int, maxDistanceM *float64) ([]*tree.NearbyTree, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrCoordinatesOutOfBounds
	}

	if limit == 0 {
		limit = s.limits.DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > s.limits.MaxLimit {
		limit = s.limits.MaxLimit
	}

	if maxDistanceM != nil {
		radius := *maxDistanceM
		if radius < s.limits.MinRadiusM {
			radius = s.limits.MinRadiusM
		}
		if radius > s.limits.MaxRadiusM {
			radius = s.limits.MaxRadiusM
		}
		maxDistanceM = &radius
	}

	params := &tree.NearestParams{
		Lat:          lat,
		Lng:          lng,
		Limit:        limit,
		MaxDistanceM: maxDistanceM,
	}

	var results []*tree.NearbyTree
	err := composables.InTx(composables.WithPool(ctx, s.db), func(txCtx context.Context) error {
		var err error
		results, err = s.trees.Nearest(txCtx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
