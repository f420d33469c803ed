package storage

import "zero-termico/models"

// DatasetStore is the interface any persistence backend for the series must satisfy.
type DatasetStore interface {
	// Load never fails; unusable state is reported as an empty dataset.
	Load() models.Dataset
	Save(ds models.Dataset) error
}

var _ DatasetStore = (*CSVStore)(nil)
