package imbue

// Zeroed pairs every missing position with 0.0, in ascending order
func Zeroed(ctx *Context) []DataPoint {
	if ctx.imbueCount == 0 {
		return []DataPoint{}
	}

	filled := make([]DataPoint, 0, ctx.imbueCount)
	for pos := range ctx.AxisRange() {
		if ctx.IsKnown(pos) {
			continue
		}
		filled = append(filled, DataPoint{X: float64(pos), Y: 0})
	}
	return filled
}
