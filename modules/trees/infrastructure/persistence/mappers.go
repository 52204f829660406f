package persistence

import (
	"github.com/drzewo/drzewo/modules/trees/domain/entities/importrun"
	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence/models"
)

func toDomainImportRun(row *models.ImportRun) *importrun.ImportRun {
	var rowCount *int
	if row.RowCount != nil {
		v := int(*row.RowCount)
		rowCount = &v
	}
	return &importrun.ImportRun{
		ID:           row.ID,
		City:         row.City,
		SourceName:   row.SourceName,
		SourceFile:   row.SourceFile,
		RefreshMode:  row.RefreshMode,
		RowCount:     rowCount,
		Status:       row.Status,
		ErrorMessage: row.ErrorMessage,
		StartedAt:    row.StartedAt,
		FinishedAt:   row.FinishedAt,
	}
}

func toDBImportRun(run *importrun.ImportRun) *models.ImportRun {
	var rowCount *int32
	if run.RowCount != nil {
		v := int32(*run.RowCount)
		rowCount = &v
	}
	return &models.ImportRun{
		ID:           run.ID,
		City:         run.City,
		SourceName:   run.SourceName,
		SourceFile:   run.SourceFile,
		RefreshMode:  run.RefreshMode,
		RowCount:     rowCount,
		Status:       run.Status,
		ErrorMessage: run.ErrorMessage,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
	}
}

func toDomainNearbyTree(row *models.NearbyTree) *tree.NearbyTree {
	return &tree.NearbyTree{
		Source:     row.Source,
		ObjectID:   row.ObjectID,
		Common:     row.CommonName,
		Botanical:  row.Botanical,
		Address:    row.Address,
		Streetname: row.Streetname,
		DBH:        row.DBHTrunk,
		Position:   row.Position,
		DistanceM:  row.Distance,
		Longitude:  row.Longitude,
		Latitude:   row.Latitude,
	}
}
