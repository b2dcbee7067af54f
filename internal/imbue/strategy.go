package imbue

import (
	"fmt"
)

// Strategy selects how gaps are filled
type Strategy int

const (
	// StrategyAverage interpolates linearly between the known neighbours of each gap
	StrategyAverage Strategy = iota
	// StrategyZeroed fills every gap with 0.0
	StrategyZeroed
	// StrategyLastKnown carries the last known value forward
	StrategyLastKnown
)

var strategyTags = [...]string{
	StrategyAverage:   "average",
	StrategyZeroed:    "zeroed",
	StrategyLastKnown: "last_known",
}

var strategyDescriptions = [...]string{
	StrategyAverage:   "Linear interpolation between the known points on either side of each gap",
	StrategyZeroed:    "Every missing position is filled with 0.0",
	StrategyLastKnown: "Every missing position takes the most recent known value to its left, or 0.0 before the first point",
}

// Strategies returns every strategy in declaration order
func Strategies() []Strategy {
	return []Strategy{StrategyAverage, StrategyZeroed, StrategyLastKnown}
}

// ParseStrategy resolves a wire tag ("average", "zeroed", "last_known")
func ParseStrategy(tag string) (Strategy, error) {
	for s, t := range strategyTags {
		if t == tag {
			return Strategy(s), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, tag)
}

// Valid reports whether s is one of the declared strategies
func (s Strategy) Valid() bool {
	return s >= StrategyAverage && s <= StrategyLastKnown
}

// String returns the wire tag of the strategy
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyTags[s]
}

// Description returns a human readable summary of the strategy
func (s Strategy) Description() string {
	if !s.Valid() {
		return ""
	}
	return strategyDescriptions[s]
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(strategyTags[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Fill runs strategy s over ctx and returns the synthesized points
func Fill(ctx *Context, s Strategy) ([]DataPoint, error) {
	switch s {
	case StrategyAverage:
		return Average(ctx), nil
	case StrategyZeroed:
		return Zeroed(ctx), nil
	case StrategyLastKnown:
		return LastKnown(ctx), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}
