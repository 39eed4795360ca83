package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/api/shared"
	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/phrazzld/neet-pulse/internal/service"
)

// Analyzer produces an insight from test history.
type Analyzer interface {
	Analyze(ctx context.Context, records []domain.TestRecord) analysis.Insight
}

// RecordHandler handles record, target, summary and analysis requests.
type RecordHandler struct {
	records  service.RecordService
	analyzer Analyzer
	logger   *slog.Logger
}

// NewRecordHandler creates a RecordHandler. A nil analyzer makes analysis
// requests report the offline fallback.
func NewRecordHandler(records service.RecordService, analyzer Analyzer, log *slog.Logger) *RecordHandler {
	if log == nil {
		log = slog.Default()
	}
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer(nil, analysis.WithLogger(log))
	}
	return &RecordHandler{
		records:  records,
		analyzer: analyzer,
		logger:   log.With(slog.String("component", "record_handler")),
	}
}

// ListRecords handles GET /api/records.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.records.ListAll(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, recordsResponse(records))
}

// CreateRecord handles POST /api/records.
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	record, records, err := h.records.Add(r.Context(), req.Input())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "record created",
		"record_id", record.ID,
		"date", record.Date,
		"total", record.Total)

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateRecordResponse{
		Record:  record,
		Records: domain.History(records),
	})
}

// DeleteRecord handles DELETE /api/records/{id}. Deleting an unknown id
// succeeds and returns the unchanged collection.
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Record id is required")
		return
	}

	records, err := h.records.Remove(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, recordsResponse(records))
}

// GetTarget handles GET /api/target.
func (h *RecordHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TargetResponse{Target: h.records.TargetScore(r.Context())})
}

// PutTarget handles PUT /api/target.
func (h *RecordHandler) PutTarget(w http.ResponseWriter, r *http.Request) {
	var req TargetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() != "required" {
			err = errors.Join(service.ErrInvalidTarget, err)
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.records.SetTargetScore(r.Context(), *req.Target); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TargetResponse{Target: *req.Target})
}

// GetSummary handles GET /api/summary.
func (h *RecordHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	records := h.records.ListAll(r.Context())
	target := h.records.TargetScore(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, summaryResponse(records, target))
}

// Analyze handles POST /api/analysis. Generator failures are reported in the
// insight text, so the response is always 200.
func (h *RecordHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	records := h.records.ListAll(r.Context())
	insight := h.analyzer.Analyze(r.Context(), records)
	shared.RespondWithJSON(w, r, http.StatusOK, analysisResponse(insight))
}

func (h *RecordHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// Health returns a handler for GET /health.
func Health(analysisEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Analysis: analysisEnabled})
	}
}
