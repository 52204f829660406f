package tree

// NearestParams is a validated nearest-trees query. MaxDistanceM is nil
// when no radius filter was requested.
type NearestParams struct {
	Lat          float64
	Lng          float64
	Limit        int
	MaxDistanceM *float64
}

// NearbyTree is one row of a nearest-trees result, ordered by distance.
type NearbyTree struct {
	Source     string
	ObjectID   int64
	Common     *string
	Botanical  *string
	Address    *string
	Streetname *string
	DBH        *float64
	Position   *string
	DistanceM  float64
	Longitude  float64
	Latitude   float64
}
