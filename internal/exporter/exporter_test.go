package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "imbuesvc/internal/errors"
	"imbuesvc/internal/imbue"
	"imbuesvc/internal/shared/testutil"
)

func TestBuildRows(t *testing.T) {
	series := testutil.SingleGap()

	t.Run("synthesized only", func(t *testing.T) {
		rows := BuildRows(series.Dataset, series.Average, false)
		require.Len(t, rows, 3)
		for i, row := range rows {
			assert.Equal(t, series.Average[i], row.Point)
			assert.True(t, row.Imputed)
		}
	})

	t.Run("merged and ordered", func(t *testing.T) {
		rows := BuildRows(series.Dataset, series.LastKnown, true)
		require.Len(t, rows, 5)

		var xs []float64
		var imputed []bool
		for _, row := range rows {
			xs = append(xs, row.Point.X)
			imputed = append(imputed, row.Imputed)
		}
		assert.Equal(t, []float64{1, 2, 3, 4, 5}, xs)
		assert.Equal(t, []bool{false, true, true, true, false}, imputed)
	})
}

func TestCSVRoundTripKeepsFullPrecision(t *testing.T) {
	series := testutil.Unsorted()
	rows := BuildRows(series.Dataset, series.Average, true)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, CSVOptions{BOMPrefix: true}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
	assert.Contains(t, buf.String(), "x,y,imputed\n")
	assert.Contains(t, buf.String(), "2,100.66666666666667,true\n")

	points, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, imbue.Merge(series.Dataset, series.Average), points)
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []imbue.DataPoint
		wantErr bool
	}{
		{
			name:  "without header",
			input: "1,123\n5,43\n",
			want:  []imbue.DataPoint{{X: 1, Y: 123}, {X: 5, Y: 43}},
		},
		{
			name:  "header, blank lines and extra columns",
			input: "\nx,y,note\n-2.7, 50.5,a\n\n1,123,b\n",
			want:  []imbue.DataPoint{{X: -2.7, Y: 50.5}, {X: 1, Y: 123}},
		},
		{
			name:    "non numeric y",
			input:   "1,abc\n",
			wantErr: true,
		},
		{
			name:    "second header is an error",
			input:   "x,y\nx,y\n",
			wantErr: true,
		},
		{
			name:    "single column",
			input:   "1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	series := testutil.Unsorted()
	rows := BuildRows(series.Dataset, series.Average, true)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	points, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, imbue.Merge(series.Dataset, series.Average), points)
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	want := []imbue.DataPoint{{X: 1, Y: 123}, {X: 5, Y: 43}}

	got, err := ReadJSON(strings.NewReader(`{"dataset":[{"x":1,"y":123},{"x":5,"y":43}]}`))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ReadJSON(strings.NewReader(` [{"x":1,"y":123},{"x":5,"y":43}]`))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ReadJSON(strings.NewReader(`{"dataset":`))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []Row{{Point: imbue.DataPoint{X: 2, Y: 0}, Imputed: true}}))
	assert.JSONEq(t, `{"dataset":[{"x":2,"y":0,"imputed":true}]}`, buf.String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data/series.csv", FormatCSV, false},
		{"series.XLSX", FormatXLSX, false},
		{"series.json", FormatJSON, false},
		{"series.pdf", "", true},
		{"series", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "application/octet-stream", got.ContentType())
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	series := testutil.SingleGap()

	for _, format := range []Format{FormatCSV, FormatXLSX, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "out", "series."+string(format))
			require.NoError(t, WriteFile(path, BuildRows(series.Dataset, series.Zeroed, true)))

			points, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, imbue.Merge(series.Dataset, series.Zeroed), points)
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.csv"))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ReadFile(filepath.Join(dir, "series.txt"))
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}
