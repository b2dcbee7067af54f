package errors

import (
	"errors"
	"net/http"

	"imbuesvc/internal/imbue"
)

// FaultDetails is the client-facing description of a rejected dataset
type FaultDetails struct {
	Kind     string `json:"kind"`
	Index    *int   `json:"index,omitempty"`
	Position *int64 `json:"position,omitempty"`
	Reason   string `json:"reason"`
}

// FromImbueError maps an error produced by the imbue package to an APIError.
// It returns nil when err is not an imbue error.
func FromImbueError(err error) *APIError {
	if errors.Is(err, imbue.ErrUnknownStrategy) {
		return NewWithDetails(http.StatusBadRequest, CodeUnknownStrategy, "Unknown strategy", map[string]string{
			"error": err.Error(),
		})
	}

	var fault *imbue.FaultError
	if !errors.As(err, &fault) {
		return nil
	}

	details := FaultDetails{
		Kind:   string(fault.Kind),
		Reason: fault.Error(),
	}
	if fault.Index >= 0 {
		index := fault.Index
		details.Index = &index
	}
	if fault.Kind == imbue.FaultDuplicate {
		pos := fault.Position
		details.Position = &pos
	}

	if errors.Is(err, imbue.ErrAxisRangeTooLarge) {
		return NewWithDetails(http.StatusRequestEntityTooLarge, CodeAxisRangeTooLarge, "Axis range too large", details)
	}
	return NewWithDetails(http.StatusUnprocessableEntity, CodeInvalidDataset, "Dataset cannot be imputed", details)
}
