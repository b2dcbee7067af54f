package imbue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	original := []DataPoint{{7, 84}, {1, 123}, {4, 56}}
	ctx, err := NewContext(original)
	require.NoError(t, err)

	merged := Merge(original, LastKnown(ctx))

	assert.Equal(t, []DataPoint{
		{1, 123}, {2, 123}, {3, 123}, {4, 56}, {5, 56}, {6, 56}, {7, 84},
	}, merged)
	assert.Equal(t, []DataPoint{{7, 84}, {1, 123}, {4, 56}}, original, "input is not reordered")
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Equal(t, []DataPoint{{1, 2}}, Merge([]DataPoint{{1, 2}}, nil))
}
