package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imbuesvc/internal/imbue"
)

func TestAPIError(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "bad body", map[string]string{"error": "eof"})

	assert.Equal(t, "bad body", err.Error())

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"status_code":400,"error_code":"INVALID_REQUEST","message":"bad body","details":{"error":"eof"}}`, string(data))

	wrapped := fmt.Errorf("decode: %w", err)
	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Same(t, err, apiErr)
}

func TestValidationHelpers(t *testing.T) {
	single := ErrValidation("strategy", "must be one of average zeroed last_known")
	assert.Equal(t, http.StatusBadRequest, single.StatusCode)
	assert.Equal(t, CodeValidationFailed, single.ErrorCode)
	assert.Equal(t, ValidationError{Field: "strategy", Message: "must be one of average zeroed last_known"}, single.Details)

	multi := NewValidationErrors([]ValidationError{{Field: "dataset", Message: "required"}})
	require.IsType(t, ValidationErrors{}, multi.Details)
	assert.Len(t, multi.Details.(ValidationErrors).Errors, 1)

	unsupported := ErrUnsupportedFormat("pdf")
	assert.Equal(t, CodeUnsupportedFormat, unsupported.ErrorCode)
	assert.Contains(t, unsupported.Message, "pdf")
}

func TestFromImbueError(t *testing.T) {
	emptyErr := func() error {
		_, err := imbue.NewContext(nil)
		return err
	}
	dupErr := func() error {
		_, err := imbue.NewContext([]imbue.DataPoint{{X: 1, Y: 1}, {X: 1.5, Y: 2}})
		return err
	}
	spanErr := func() error {
		_, err := imbue.NewContext([]imbue.DataPoint{{X: 0, Y: 1}, {X: 100, Y: 2}}, imbue.WithMaxAxisSpan(10))
		return err
	}

	tests := []struct {
		name         string
		err          error
		expectedCode string
		expectedHTTP int
		expectedKind string
	}{
		{
			name:         "empty dataset",
			err:          emptyErr(),
			expectedCode: CodeInvalidDataset,
			expectedHTTP: http.StatusUnprocessableEntity,
			expectedKind: "empty_dataset",
		},
		{
			name:         "duplicate position",
			err:          fmt.Errorf("imbue: %w", dupErr()),
			expectedCode: CodeInvalidDataset,
			expectedHTTP: http.StatusUnprocessableEntity,
			expectedKind: "duplicate_position",
		},
		{
			name:         "axis range guard",
			err:          spanErr(),
			expectedCode: CodeAxisRangeTooLarge,
			expectedHTTP: http.StatusRequestEntityTooLarge,
			expectedKind: "axis_range_too_large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromImbueError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.expectedCode, apiErr.ErrorCode)
			assert.Equal(t, tt.expectedHTTP, apiErr.StatusCode)

			details, ok := apiErr.Details.(FaultDetails)
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, details.Kind)
			assert.NotEmpty(t, details.Reason)
		})
	}

	t.Run("duplicate carries index and position", func(t *testing.T) {
		details := FromImbueError(dupErr()).Details.(FaultDetails)
		require.NotNil(t, details.Index)
		require.NotNil(t, details.Position)
		assert.Equal(t, 1, *details.Index)
		assert.Equal(t, int64(1), *details.Position)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := imbue.ParseStrategy("spline")
		apiErr := FromImbueError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, CodeUnknownStrategy, apiErr.ErrorCode)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.Nil(t, FromImbueError(errors.New("disk full")))
	})
}
