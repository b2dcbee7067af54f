package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "imbuesvc/internal/errors"
	"imbuesvc/internal/exporter"
	"imbuesvc/internal/imbue"
	imbuemw "imbuesvc/internal/middleware"
	"imbuesvc/internal/services"
	api "imbuesvc/pkg/contracts/api/v1"
)

// Response headers describing an imputation
const (
	HeaderStrategy   = "X-Imbue-Strategy"
	HeaderImbueCount = "X-Imbue-Count"
	HeaderTotalCount = "X-Imbue-Total-Count"
)

// ImbueHandler handles imputation requests with RFC 7807 compliance
type ImbueHandler struct {
	service      ImbueServiceInterface
	validator    *imbuemw.Validator
	query        *imbuemw.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewImbueHandler creates a new imputation handler
func NewImbueHandler(service ImbueServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ImbueHandler {
	return &ImbueHandler{
		service:      service,
		validator:    imbuemw.NewValidator(logger),
		query:        imbuemw.NewQueryParamValidator(logger, errorHandler),
		logger:       logger.With(slog.String("component", "imbue_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the imputation routes
func (h *ImbueHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses; exports set their own type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Imbue)
	r.Post("/batch", h.Batch)
	r.Post("/export", h.Export)

	return r
}

// Imbue handles POST /imbue
func (h *ImbueHandler) Imbue(w http.ResponseWriter, r *http.Request) {
	var req api.ImbueRequest
	strategy, ok := h.decodeImbueRequest(w, r, &req)
	if !ok {
		return
	}

	result, err := h.service.Fill(r.Context(), req.Dataset, strategy)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	setImbueHeaders(w, result)
	render.JSON(w, r, api.ImbueResponse{Dataset: result.Synthesized})
}

// Batch handles POST /imbue/batch
func (h *ImbueHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	items := make([]services.BatchItem, len(req.Series))
	for i, s := range req.Series {
		items[i] = services.BatchItem{ID: s.ID, Points: s.Dataset, Strategy: s.Strategy}
	}

	outcomes, err := h.service.FillBatch(r.Context(), items)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := api.BatchResponse{Results: make([]api.SeriesResult, len(outcomes))}
	failed := 0
	for i, o := range outcomes {
		resp.Results[i].ID = o.ID
		if o.Err != nil {
			failed++
			resp.Results[i].Error = seriesError(o.Err)
			continue
		}
		resp.Results[i].Dataset = o.Result.Synthesized
	}

	h.logger.InfoContext(r.Context(), "batch served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("series", len(outcomes)),
		slog.Int("failed", failed))

	render.JSON(w, r, resp)
}

// Export handles POST /imbue/export?format=csv|xlsx&merge=bool
func (h *ImbueHandler) Export(w http.ResponseWriter, r *http.Request) {
	formatName, ok := h.query.ValidateEnum(w, r, "format", api.ExportFormats(), string(api.ExportCSV))
	if !ok {
		return
	}
	merge, ok := h.query.ValidateBool(w, r, "merge", false)
	if !ok {
		return
	}
	format, err := exporter.ParseFormat(formatName)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFormat(formatName))
		return
	}

	var req api.ImbueRequest
	strategy, ok := h.decodeImbueRequest(w, r, &req)
	if !ok {
		return
	}

	result, err := h.service.Fill(r.Context(), req.Dataset, strategy)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// Encode fully before writing so failures still produce a problem response.
	var buf bytes.Buffer
	if err := exporter.Write(&buf, format, exporter.BuildRows(req.Dataset, result.Synthesized, merge)); err != nil {
		h.handleError(w, r, fmt.Errorf("encode %s export: %w", format, err))
		return
	}

	setImbueHeaders(w, result)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="imbue-%s.%s"`, strategy, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
	}
}

// ListStrategies handles GET /api/v1/strategies
func (h *ImbueHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	all := h.service.Strategies()
	resp := api.StrategiesResponse{
		Strategies: make([]api.StrategyInfo, len(all)),
		Default:    h.service.DefaultStrategy().String(),
	}
	for i, s := range all {
		resp.Strategies[i] = api.StrategyInfo{Name: s.String(), Description: s.Description()}
	}
	render.JSON(w, r, resp)
}

// decodeImbueRequest decodes, validates and resolves the strategy of req
func (h *ImbueHandler) decodeImbueRequest(w http.ResponseWriter, r *http.Request, req *api.ImbueRequest) (imbue.Strategy, bool) {
	if !h.decodeAndValidate(w, r, req) {
		return 0, false
	}
	strategy, err := imbue.ParseStrategy(req.Strategy)
	if err != nil {
		h.handleError(w, r, err)
		return 0, false
	}
	return strategy, true
}

func (h *ImbueHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, err)
			return false
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}
	if err := h.validator.ValidateStruct(v); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

func (h *ImbueHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr := toAPIError(err); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

func setImbueHeaders(w http.ResponseWriter, result *services.FillResult) {
	w.Header().Set(HeaderStrategy, result.Strategy.String())
	w.Header().Set(HeaderImbueCount, strconv.FormatInt(result.ImbueCount, 10))
	w.Header().Set(HeaderTotalCount, strconv.FormatInt(result.TotalCount, 10))
}

// toAPIError maps core and service errors to API errors, or returns nil
func toAPIError(err error) *apierrors.APIError {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if mapped := apierrors.FromImbueError(err); mapped != nil {
		return mapped
	}

	switch {
	case errors.Is(err, services.ErrDatasetTooLarge):
		return apierrors.New(http.StatusRequestEntityTooLarge, apierrors.CodeDatasetTooLarge, err.Error())
	case errors.Is(err, services.ErrBatchTooLarge):
		return apierrors.New(http.StatusRequestEntityTooLarge, apierrors.CodePayloadTooLarge, err.Error())
	default:
		return nil
	}
}

// seriesError describes a failed batch entry
func seriesError(err error) *api.SeriesError {
	apiErr := toAPIError(err)
	if apiErr == nil {
		apiErr = apierrors.ErrInternalServer
	}
	return &api.SeriesError{
		Type:    apierrors.ProblemTypeFor(apiErr.ErrorCode),
		Status:  apiErr.StatusCode,
		Code:    apiErr.ErrorCode,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
