package imbue

import (
	"cmp"
	"fmt"
	"slices"
)

// DataPoint is a single observation on the axis.
// Two points are equal when both coordinates are exactly equal.
type DataPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewDataPoint creates a data point
func NewDataPoint(x, y float64) DataPoint {
	return DataPoint{X: x, Y: y}
}

// Position returns the integer axis position of the point (X truncated toward zero)
func (p DataPoint) Position() int64 {
	return position(p.X)
}

// String implements fmt.Stringer
func (p DataPoint) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func position(x float64) int64 {
	return int64(x)
}

// sortByPosition returns a copy of points ordered by ascending position
func sortByPosition(points []DataPoint) []DataPoint {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b DataPoint) int {
		return cmp.Compare(a.Position(), b.Position())
	})
	return sorted
}
