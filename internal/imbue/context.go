package imbue

import (
	"iter"
	"math"
	"slices"
)

// MaxPosition is the largest magnitude of X that still truncates to an exact integer position
const MaxPosition = 1 << 53

// Option configures context construction
type Option func(*options)

type options struct {
	maxAxisSpan int64
}

// WithMaxAxisSpan rejects datasets whose axis covers more than n positions.
// A value of zero or less disables the guard.
func WithMaxAxisSpan(n int64) Option {
	return func(o *options) {
		o.maxAxisSpan = n
	}
}

// Context is the gap analysis of a dataset. It is read-only once built and
// safe for concurrent use by any number of strategies.
type Context struct {
	dataset    []DataPoint
	axisMin    int64
	axisMax    int64
	totalCount int64
	imbueCount int64
	known      map[int64]struct{}
}

// NewContext analyses points and returns the context strategies operate on.
// The input slice is copied; later changes to it are not observed.
func NewContext(points []DataPoint, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(points) == 0 {
		return nil, newFault(FaultEmpty, ErrEmptyDataset, -1, 0, "at least one point is required")
	}

	// Single pass over the raw coordinates; the first point seeds the bounds.
	minX, maxX := points[0].X, points[0].X
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return nil, newFault(FaultNonFinite, ErrNonFiniteValue, i, 0, "point %d is %v", i, p)
		}
		if math.Abs(p.X) > MaxPosition {
			return nil, newFault(FaultOutOfRange, ErrPositionOutOfRange, i, 0,
				"point %d has x=%g beyond ±%d", i, p.X, int64(MaxPosition))
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}

	known := make(map[int64]struct{}, len(points))
	for i, p := range points {
		pos := p.Position()
		if _, dup := known[pos]; dup {
			return nil, newFault(FaultDuplicate, ErrDuplicatePosition, i, pos,
				"point %d truncates to position %d which is already present", i, pos)
		}
		known[pos] = struct{}{}
	}

	axisMin, axisMax := position(minX), position(maxX)
	totalCount := axisMax - axisMin + 1
	imbueCount := totalCount - int64(len(points))
	if imbueCount < 0 {
		return nil, newFault(FaultInconsistent, ErrInconsistentAxis, -1, 0,
			"axis [%d, %d] holds %d positions for %d points", axisMin, axisMax, totalCount, len(points))
	}
	if o.maxAxisSpan > 0 && totalCount > o.maxAxisSpan {
		return nil, newFault(FaultRangeTooLarge, ErrAxisRangeTooLarge, -1, 0,
			"axis [%d, %d] spans %d positions, limit is %d", axisMin, axisMax, totalCount, o.maxAxisSpan)
	}

	return &Context{
		dataset:    slices.Clone(points),
		axisMin:    axisMin,
		axisMax:    axisMax,
		totalCount: totalCount,
		imbueCount: imbueCount,
		known:      known,
	}, nil
}

// Dataset returns a copy of the input points in their original order
func (c *Context) Dataset() []DataPoint {
	return slices.Clone(c.dataset)
}

// Len returns the number of input points
func (c *Context) Len() int {
	return len(c.dataset)
}

// AxisMin returns the smallest position on the axis
func (c *Context) AxisMin() int64 {
	return c.axisMin
}

// AxisMax returns the largest position on the axis
func (c *Context) AxisMax() int64 {
	return c.axisMax
}

// TotalCount returns the number of positions on the axis, gaps included
func (c *Context) TotalCount() int64 {
	return c.totalCount
}

// ImbueCount returns the number of positions that carry no point
func (c *Context) ImbueCount() int64 {
	return c.imbueCount
}

// AxisRange yields every position from AxisMin to AxisMax inclusive
func (c *Context) AxisRange() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for pos := c.axisMin; pos <= c.axisMax; pos++ {
			if !yield(pos) {
				return
			}
		}
	}
}

// IsKnown reports whether a point exists at pos
func (c *Context) IsKnown(pos int64) bool {
	_, ok := c.known[pos]
	return ok
}

// KnownPositions returns the positions present in the dataset in ascending order
func (c *Context) KnownPositions() []int64 {
	positions := make([]int64, 0, len(c.known))
	for pos := range c.known {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	return positions
}
