package http

import (
	"context"

	"imbuesvc/internal/imbue"
	"imbuesvc/internal/services"
)

// ImbueServiceInterface defines the imputation operations used by the handlers
type ImbueServiceInterface interface {
	Fill(ctx context.Context, points []imbue.DataPoint, strategy imbue.Strategy) (*services.FillResult, error)
	FillBatch(ctx context.Context, items []services.BatchItem) ([]services.BatchOutcome, error)
	Strategies() []imbue.Strategy
	DefaultStrategy() imbue.Strategy
}
