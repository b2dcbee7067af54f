package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"imbuesvc/internal/imbue"
)

// datasetDocument matches the body of the imputation API
type datasetDocument struct {
	Dataset []imbue.DataPoint `json:"dataset"`
}

type jsonRow struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Imputed bool    `json:"imputed"`
}

// ReadJSON accepts either {"dataset":[{x,y}...]} or a bare [{x,y}...] array
func ReadJSON(r io.Reader) ([]imbue.DataPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var points []imbue.DataPoint
		if err := json.Unmarshal(trimmed, &points); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return points, nil
	}

	var doc datasetDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	return doc.Dataset, nil
}

// WriteJSON writes rows as {"dataset":[{x,y,imputed}...]}
func WriteJSON(w io.Writer, rows []Row) error {
	out := struct {
		Dataset []jsonRow `json:"dataset"`
	}{Dataset: make([]jsonRow, len(rows))}

	for i, row := range rows {
		out.Dataset[i] = jsonRow{X: row.Point.X, Y: row.Point.Y, Imputed: row.Imputed}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
