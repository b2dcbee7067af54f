package imbue

// Merge combines the original points with synthesized ones into a single
// series ordered by position. Neither input is modified.
func Merge(original, synthesized []DataPoint) []DataPoint {
	merged := make([]DataPoint, 0, len(original)+len(synthesized))
	merged = append(merged, original...)
	merged = append(merged, synthesized...)
	return sortByPosition(merged)
}
