package imbue

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset faults
var (
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrNonFiniteValue     = errors.New("dataset contains a non-finite value")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrDuplicatePosition  = errors.New("duplicate position")
	ErrInconsistentAxis   = errors.New("axis holds fewer positions than the dataset")
	ErrAxisRangeTooLarge  = errors.New("axis range too large")
	ErrUnknownStrategy    = errors.New("unknown strategy")
)

// FaultKind classifies a dataset fault
type FaultKind string

const (
	FaultEmpty         FaultKind = "empty_dataset"
	FaultNonFinite     FaultKind = "non_finite_value"
	FaultOutOfRange    FaultKind = "position_out_of_range"
	FaultDuplicate     FaultKind = "duplicate_position"
	FaultInconsistent  FaultKind = "inconsistent_axis"
	FaultRangeTooLarge FaultKind = "axis_range_too_large"
)

// FaultError describes why a dataset was rejected.
// Index is the offending point's index in the input, or -1 when the fault
// concerns the dataset as a whole.
type FaultError struct {
	Kind     FaultKind
	Index    int
	Position int64
	Detail   string
	Err      error
}

// Error implements the error interface
func (e *FaultError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is to match the sentinel
func (e *FaultError) Unwrap() error {
	return e.Err
}

func newFault(kind FaultKind, err error, index int, pos int64, format string, args ...any) *FaultError {
	return &FaultError{
		Kind:     kind,
		Index:    index,
		Position: pos,
		Detail:   fmt.Sprintf(format, args...),
		Err:      err,
	}
}

// IsFault reports whether err is a dataset fault produced by this package
func IsFault(err error) bool {
	var fault *FaultError
	return errors.As(err, &fault)
}
