package testutil

import (
	"imbuesvc/internal/imbue"
)

// Series is a named dataset with the points each strategy is expected to synthesize
type Series struct {
	Name      string
	Dataset   []imbue.DataPoint
	Average   []imbue.DataPoint
	Zeroed    []imbue.DataPoint
	LastKnown []imbue.DataPoint
}

// Expected returns the synthesized points for strategy s
func (s Series) Expected(strategy imbue.Strategy) []imbue.DataPoint {
	switch strategy {
	case imbue.StrategyAverage:
		return s.Average
	case imbue.StrategyZeroed:
		return s.Zeroed
	case imbue.StrategyLastKnown:
		return s.LastKnown
	default:
		return nil
	}
}

// SingleGap has one run of three missing positions
func SingleGap() Series {
	return Series{
		Name:      "single_gap",
		Dataset:   []imbue.DataPoint{{X: 1, Y: 123}, {X: 5, Y: 43}},
		Average:   []imbue.DataPoint{{X: 2, Y: 103}, {X: 3, Y: 83}, {X: 4, Y: 63}},
		Zeroed:    []imbue.DataPoint{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}},
		LastKnown: []imbue.DataPoint{{X: 2, Y: 123}, {X: 3, Y: 123}, {X: 4, Y: 123}},
	}
}

// Unsorted is given out of order and has two gap runs
func Unsorted() Series {
	return Series{
		Name:    "unsorted",
		Dataset: []imbue.DataPoint{{X: 7, Y: 84}, {X: 1, Y: 123}, {X: 4, Y: 56}},
		Average: []imbue.DataPoint{
			{X: 2, Y: 100.66666666666667}, {X: 3, Y: 78.33333333333334},
			{X: 5, Y: 65.33333333333333}, {X: 6, Y: 74.66666666666666},
		},
		Zeroed:    []imbue.DataPoint{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0}},
		LastKnown: []imbue.DataPoint{{X: 2, Y: 123}, {X: 3, Y: 123}, {X: 5, Y: 56}, {X: 6, Y: 56}},
	}
}

// Contiguous has no gaps at all
func Contiguous() Series {
	return Series{
		Name:      "contiguous",
		Dataset:   []imbue.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}},
		Average:   []imbue.DataPoint{},
		Zeroed:    []imbue.DataPoint{},
		LastKnown: []imbue.DataPoint{},
	}
}

// AllSeries returns every fixture
func AllSeries() []Series {
	return []Series{SingleGap(), Unsorted(), Contiguous()}
}
