// Package exporter reads and writes datasets as CSV, XLSX and JSON files.
//
// Files hold one point per row with the columns x and y. Exports add an
// imputed column that marks synthesized rows, which lets a merged export show
// original and synthesized points side by side.
//
// Example usage:
//
//	points, err := exporter.ReadFile("series.xlsx")
//	...
//	rows := exporter.BuildRows(points, synthesized, true)
//	err = exporter.WriteFile("filled.csv", rows)
package exporter
