package exporter

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "imbuesvc/internal/errors"
	"imbuesvc/internal/imbue"
)

// Headers are the column names written to CSV and XLSX exports
var Headers = []string{"x", "y", "imputed"}

// Row is one exported point
type Row struct {
	Point   imbue.DataPoint
	Imputed bool
}

// BuildRows lays out synthesized points for export. With merge set, the
// original points are included and rows are ordered by position.
func BuildRows(original, synthesized []imbue.DataPoint, merge bool) []Row {
	if !merge {
		rows := make([]Row, len(synthesized))
		for i, p := range synthesized {
			rows[i] = Row{Point: p, Imputed: true}
		}
		return rows
	}

	imputed := make(map[int64]struct{}, len(synthesized))
	for _, p := range synthesized {
		imputed[p.Position()] = struct{}{}
	}

	merged := imbue.Merge(original, synthesized)
	rows := make([]Row, len(merged))
	for i, p := range merged {
		_, ok := imputed[p.Position()]
		rows[i] = Row{Point: p, Imputed: ok}
	}
	return rows
}

func (r Row) record() []string {
	return []string{formatFloat(r.Point.X), formatFloat(r.Point.Y), formatBool(r.Imputed)}
}

// parseRecords turns tabular rows into points. A leading header row is
// skipped when its first cell is not a number. Columns past y are ignored.
func parseRecords(records [][]string, source string) ([]imbue.DataPoint, error) {
	points := make([]imbue.DataPoint, 0, len(records))
	first := true
	for i, record := range records {
		if isBlank(record) {
			continue
		}
		header := first
		first = false
		if len(record) < 2 {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("%s row %d: expected x and y columns, got %d", source, i+1, len(record)), nil).
				WithContext("row", i+1)
		}

		x, errX := parseCell(record[0])
		if errX != nil && header {
			continue
		}
		if errX != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s row %d: invalid x", source, i+1), errX).
				WithContext("row", i+1)
		}

		y, errY := parseCell(record[1])
		if errY != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s row %d: invalid y", source, i+1), errY).
				WithContext("row", i+1)
		}

		points = append(points, imbue.DataPoint{X: x, Y: y})
	}
	return points, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
