// Package services implements the business logic layer of the imbue service.
// It sits between the HTTP handlers and the imbue core, applying the
// configured size guards before any allocation and recording traces and
// metrics for every imputation.
//
// # Services
//
//	- ImbueService: single and batch imputation, strategy listing
//	- HealthService: health, readiness, liveness and version reporting
//
// # Batch Processing
//
// FillBatch runs items on an errgroup bounded by
// config.ImbueConfig.BatchConcurrency. A faulty item is reported in its own
// BatchOutcome and never fails its siblings; only cancellation of the request
// context aborts the batch.
//
// # Error Handling
//
// Dataset faults surface unchanged from the imbue package (*imbue.FaultError).
// The service adds ErrDatasetTooLarge and ErrBatchTooLarge for its own guards.
// Mapping to HTTP status codes is left to the transport layer.
package services
