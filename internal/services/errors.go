package services

import "errors"

// Imputation service errors
var (
	// ErrDatasetTooLarge is returned when a dataset holds more points than allowed
	ErrDatasetTooLarge = errors.New("dataset too large")

	// ErrBatchTooLarge is returned when a batch holds more series than allowed
	ErrBatchTooLarge = errors.New("batch too large")
)
