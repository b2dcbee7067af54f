package api

import (
	"imbuesvc/internal/imbue"
)

// ImbueResponse carries only the synthesized points
type ImbueResponse struct {
	Dataset []imbue.DataPoint `json:"dataset"`
}

// SeriesError describes why one batch entry was rejected
type SeriesError struct {
	Type    string      `json:"type"`
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SeriesResult holds either the synthesized points or the error of one entry
type SeriesResult struct {
	ID      string            `json:"id"`
	Dataset []imbue.DataPoint `json:"dataset,omitzero"`
	Error   *SeriesError      `json:"error,omitempty"`
}

// BatchResponse lists results in request order
type BatchResponse struct {
	Results []SeriesResult `json:"results"`
}

// StrategyInfo describes one gap-filling strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StrategiesResponse lists every supported strategy
type StrategiesResponse struct {
	Strategies []StrategyInfo `json:"strategies"`
	Default    string         `json:"default"`
}
