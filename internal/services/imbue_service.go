package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"imbuesvc/internal/config"
	"imbuesvc/internal/imbue"
	"imbuesvc/internal/infrastructure"
)

// TracerName names the tracer used for imputation spans
const TracerName = "imbuesvc.imbue"

// FillResult is the outcome of one imputation
type FillResult struct {
	Strategy    imbue.Strategy
	Synthesized []imbue.DataPoint
	AxisMin     int64
	AxisMax     int64
	TotalCount  int64
	ImbueCount  int64
}

// BatchItem is one series of a batch. Strategy is a wire tag.
type BatchItem struct {
	ID       string
	Points   []imbue.DataPoint
	Strategy string
}

// BatchOutcome pairs a batch item with its result or error
type BatchOutcome struct {
	ID     string
	Result *FillResult
	Err    error
}

// ImbueService fills dataset gaps with size guards, tracing and metrics
type ImbueService struct {
	cfg     config.ImbueConfig
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewImbueService creates an imputation service.
// A nil tracer or metrics disables that instrumentation.
func NewImbueService(cfg config.ImbueConfig, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ImbueService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(TracerName)
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "imbue_service"))
	logger.Info("ImbueService initialized",
		slog.Int64("max_axis_span", cfg.MaxAxisSpan),
		slog.Int("max_dataset_size", cfg.MaxDatasetSize),
		slog.Int("max_batch_series", cfg.MaxBatchSeries),
		slog.Int("batch_concurrency", cfg.BatchConcurrency))

	return &ImbueService{
		cfg:     cfg,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Fill validates points and returns the synthesized points for strategy
func (s *ImbueService) Fill(ctx context.Context, points []imbue.DataPoint, strategy imbue.Strategy) (*FillResult, error) {
	ctx, span := s.tracer.Start(ctx, "imbue.fill",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("imbue.strategy", strategy.String()),
			attribute.Int("imbue.points", len(points)),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := s.fill(ctx, points, strategy)
	outcome := infrastructure.ImputationOutcome{
		Strategy: strategy.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		outcome.FaultKind = faultKind(err)
		infrastructure.RecordImputation(ctx, s.metrics, outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.logger.WarnContext(ctx, "imputation rejected",
			slog.String("strategy", strategy.String()),
			slog.Int("points", len(points)),
			slog.String("fault", outcome.FaultKind),
			slog.String("error", err.Error()))
		return nil, err
	}

	outcome.AxisSpan = result.TotalCount
	outcome.Synthesized = len(result.Synthesized)
	infrastructure.RecordImputation(ctx, s.metrics, outcome)
	span.SetAttributes(
		attribute.Int64("imbue.total_count", result.TotalCount),
		attribute.Int64("imbue.imbue_count", result.ImbueCount),
	)

	s.logger.DebugContext(ctx, "imputation completed",
		slog.String("strategy", strategy.String()),
		slog.Int("points", len(points)),
		slog.Int64("total_count", result.TotalCount),
		slog.Int64("imbue_count", result.ImbueCount),
		slog.Duration("duration", outcome.Duration))

	return result, nil
}

func (s *ImbueService) fill(ctx context.Context, points []imbue.DataPoint, strategy imbue.Strategy) (*FillResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %s", imbue.ErrUnknownStrategy, strategy)
	}
	if s.cfg.MaxDatasetSize > 0 && len(points) > s.cfg.MaxDatasetSize {
		return nil, fmt.Errorf("%w: %d points, limit is %d", ErrDatasetTooLarge, len(points), s.cfg.MaxDatasetSize)
	}

	gaps, err := imbue.NewContext(points, imbue.WithMaxAxisSpan(s.cfg.MaxAxisSpan))
	if err != nil {
		return nil, err
	}

	synthesized, err := imbue.Fill(gaps, strategy)
	if err != nil {
		return nil, err
	}

	return &FillResult{
		Strategy:    strategy,
		Synthesized: synthesized,
		AxisMin:     gaps.AxisMin(),
		AxisMax:     gaps.AxisMax(),
		TotalCount:  gaps.TotalCount(),
		ImbueCount:  gaps.ImbueCount(),
	}, nil
}

// FillBatch fills every item concurrently, bounded by the configured
// concurrency. Item failures are reported per outcome; only cancellation
// of ctx fails the whole batch.
func (s *ImbueService) FillBatch(ctx context.Context, items []BatchItem) ([]BatchOutcome, error) {
	if s.cfg.MaxBatchSeries > 0 && len(items) > s.cfg.MaxBatchSeries {
		return nil, fmt.Errorf("%w: %d series, limit is %d", ErrBatchTooLarge, len(items), s.cfg.MaxBatchSeries)
	}

	ctx, span := s.tracer.Start(ctx, "imbue.fill_batch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("imbue.series", len(items))),
	)
	defer span.End()

	outcomes := make([]BatchOutcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.BatchConcurrency > 0 {
		g.SetLimit(s.cfg.BatchConcurrency)
	}

	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		outcomes[i].ID = id

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			strategy, err := imbue.ParseStrategy(item.Strategy)
			if err != nil {
				outcomes[i].Err = err
				return nil
			}

			result, err := s.Fill(gctx, item.Points, strategy)
			if err != nil && gctx.Err() != nil && errors.Is(err, gctx.Err()) {
				return err
			}
			outcomes[i].Result = result
			outcomes[i].Err = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("imbue.failed", failed))

	s.logger.InfoContext(ctx, "batch imputation completed",
		slog.Int("series", len(items)),
		slog.Int("failed", failed))

	return outcomes, nil
}

// Strategies lists the supported strategies
func (s *ImbueService) Strategies() []imbue.Strategy {
	return imbue.Strategies()
}

// DefaultStrategy returns the configured fallback strategy
func (s *ImbueService) DefaultStrategy() imbue.Strategy {
	return s.cfg.Strategy()
}

// faultKind labels err for metrics and logs
func faultKind(err error) string {
	var fault *imbue.FaultError
	switch {
	case errors.As(err, &fault):
		return string(fault.Kind)
	case errors.Is(err, imbue.ErrUnknownStrategy):
		return "unknown_strategy"
	case errors.Is(err, ErrDatasetTooLarge):
		return "dataset_too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
