package imbue

// LastKnown fills every missing position with the most recent known value to
// its left. The running value starts at 0.0; since the axis begins at the
// smallest known position it is always replaced before the first gap.
func LastKnown(ctx *Context) []DataPoint {
	if ctx.imbueCount == 0 {
		return []DataPoint{}
	}

	values := make(map[int64]float64, len(ctx.dataset))
	for _, p := range ctx.dataset {
		values[p.Position()] = p.Y
	}

	filled := make([]DataPoint, 0, ctx.imbueCount)
	last := 0.0
	for pos := range ctx.AxisRange() {
		if y, ok := values[pos]; ok {
			last = y
			continue
		}
		filled = append(filled, DataPoint{X: float64(pos), Y: last})
	}
	return filled
}
