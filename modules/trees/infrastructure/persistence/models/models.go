package models

import "time"

type ImportRun struct {
	ID           int64
	City         string
	SourceName   string
	SourceFile   string
	RefreshMode  bool
	RowCount     *int32
	Status       string
	ErrorMessage *string
	StartedAt    time.Time
	FinishedAt   time.Time
}

type NearbyTree struct {
	Source     string
	ObjectID   int64
	CommonName *string
	Botanical  *string
	Address    *string
	Streetname *string
	DBHTrunk   *float64
	Position   *string
	Distance   float64
	Longitude  float64
	Latitude   float64
}
