// Package imbue fills gaps in sparse, integer-indexed one-dimensional datasets.
//
// A dataset is a slice of DataPoint values whose X coordinates are truncated
// toward zero to obtain their integer position on the axis. The axis spans the
// smallest to the largest position present in the dataset; every position in
// between that carries no point is a gap.
//
// # Core Components
//
//   - Context: the gap analysis of a dataset (axis bounds, counts, known positions)
//   - Average: linear interpolation between the known neighbours of each gap
//   - Zeroed: every gap filled with 0.0
//   - LastKnown: every gap filled with the most recent known value to its left
//
// Strategies return only the synthesized points, in ascending position order.
// Callers that need a dense series combine them with the input using Merge.
//
// # Usage Example
//
//	ctx, err := imbue.NewContext(points, imbue.WithMaxAxisSpan(1_000_000))
//	if err != nil {
//	    return err
//	}
//
//	filled, err := imbue.Fill(ctx, imbue.StrategyAverage)
//	if err != nil {
//	    return err
//	}
//
// Context construction rejects datasets the strategies cannot reason about:
// empty input, non-finite values, positions outside the exactly representable
// integer range, and points that truncate to the same position. Every fault is
// reported as a *FaultError wrapping one of the package sentinel errors.
package imbue
