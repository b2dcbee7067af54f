package imbue

import (
	"math"
)

// Average fills each gap by linear interpolation between its known neighbours.
//
// For a gap between a and b the step is |a.Y-b.Y| / (missing+1), negated when
// the series falls. The first synthesized value is a.Y+step and each following
// position adds step again, so the last synthesized value stops one step short
// of b.Y.
//
// Returns: synthesized points in ascending position order
func Average(ctx *Context) []DataPoint {
	if ctx.imbueCount == 0 {
		return []DataPoint{}
	}

	sorted := sortByPosition(ctx.dataset)
	filled := make([]DataPoint, 0, ctx.imbueCount)
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if b.Position() == a.Position()+1 {
			continue
		}
		filled = appendInterpolated(filled, a, b)
	}
	return filled
}

func appendInterpolated(dst []DataPoint, a, b DataPoint) []DataPoint {
	start := a.Position() + 1
	end := b.Position() - 1
	missing := end - start + 1

	step := math.Abs(a.Y-b.Y) / float64(missing+1)
	if a.Y > b.Y {
		step = -step
	}

	// Running sum, not a.Y + k*step: the two differ in the last bits.
	value := a.Y + step
	for pos := start; pos <= end; pos++ {
		dst = append(dst, DataPoint{X: float64(pos), Y: value})
		value += step
	}
	return dst
}
