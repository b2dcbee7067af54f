// Package api contains the request and response contracts of the imbue HTTP API.
// Version v1 is served under /api/v1 and, for single imputations, at /imbue.
package api

import (
	"imbuesvc/internal/imbue"
)

// ImbueRequest asks for the gaps of one dataset to be filled
type ImbueRequest struct {
	Dataset  []imbue.DataPoint `json:"dataset" validate:"required,min=1"`
	Strategy string            `json:"strategy" validate:"required,strategy"`
}

// SeriesRequest is one entry of a batch. ID is generated when omitted.
type SeriesRequest struct {
	ID       string            `json:"id,omitempty" validate:"omitempty,max=128"`
	Dataset  []imbue.DataPoint `json:"dataset" validate:"required,min=1"`
	Strategy string            `json:"strategy" validate:"required,strategy"`
}

// BatchRequest fills several independent datasets in one call
type BatchRequest struct {
	Series []SeriesRequest `json:"series" validate:"required,min=1,dive"`
}

// ExportFormat names a file format for the export endpoint
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFormats lists the accepted values of the format query parameter
func ExportFormats() []string {
	return []string{string(ExportCSV), string(ExportXLSX)}
}
