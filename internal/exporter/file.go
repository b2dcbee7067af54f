package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "imbuesvc/internal/errors"
	"imbuesvc/internal/imbue"
)

// Write encodes rows in format f
func Write(w io.Writer, f Format, rows []Row) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows, CSVOptions{BOMPrefix: true})
	case FormatXLSX:
		return WriteXLSX(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// Read decodes points in format f
func Read(r io.Reader, f Format) ([]imbue.DataPoint, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// ReadFile reads a dataset, picking the format from the file extension
func ReadFile(path string) ([]imbue.DataPoint, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, apperrors.NewParsingError("unknown input format", err).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open input", err).WithContext("path", path)
	}
	defer file.Close()

	points, err := Read(file, format)
	if err != nil {
		return nil, err
	}

	slog.Debug("Read dataset file",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("points", len(points)))
	return points, nil
}

// WriteFile writes rows, picking the format from the file extension
func WriteFile(path string, rows []Row) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return apperrors.NewParsingError("unknown output format", err).WithContext("path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create output", err).WithContext("path", path)
	}

	if err := Write(file, format, rows); err != nil {
		file.Close()
		return err
	}

	slog.Debug("Wrote dataset file",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)))
	return file.Close()
}
