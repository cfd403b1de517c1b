package handler

import (
	"context"
	"iter"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/stream"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/httputil"
	"ethicsaudit/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service

type Service interface {
	Generate(ctx context.Context, req models.GenerateRequest) iter.Seq[models.ProgressEvent]
	List(ctx context.Context, auditID uuid.UUID) ([]models.Report, error)
	Get(ctx context.Context, reportID uuid.UUID) (*models.Report, error)
}

// StreamErrorResponse is written when a stream cannot be opened at all.
type StreamErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler serves report generation and retrieval.
type Handler struct {
	service    Service
	logger     *slog.Logger
	generateMW []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithGenerateMiddleware wraps only POST /api/reports, e.g. with a quota.
func WithGenerateMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.generateMW = append(h.generateMW, mw...)
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/reports", func(r chi.Router) {
		r.With(h.generateMW...).Post("/", h.HandleGenerate)
		r.Get("/", h.HandleList)
		r.Get("/{reportID}", h.HandleGet)
	})
}

// HandleGenerate handles POST /api/reports. Once headers are sent every
// failure travels in-band as an error frame and the status stays 200.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.UserID(ctx) == uuid.Nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized - Please log in to generate reports"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[GenerateReportRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	flusher, ok := findFlusher(w)
	if !ok {
		h.logger.ErrorContext(ctx, "response writer cannot stream", "request_id", requestID)
		httputil.WriteJSON(w, http.StatusInternalServerError, StreamErrorResponse{
			Error:   "Failed to start report generation",
			Details: "streaming is not supported by this connection",
		})
		return
	}

	header := w.Header()
	header.Set("Content-Type", stream.ContentType)
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := stream.NewEncoder(w, func() error {
		flusher.Flush()
		return nil
	})
	frames := 0
	for ev := range h.service.Generate(ctx, req.toModel()) {
		if err := enc.Encode(ev); err != nil {
			h.logger.InfoContext(ctx, "client left report stream",
				"request_id", requestID,
				"frames", frames,
				"error", err,
			)
			return
		}
		frames++
	}
	if ctx.Err() != nil {
		return
	}
	if err := enc.Done(); err != nil {
		h.logger.DebugContext(ctx, "failed to terminate report stream", "request_id", requestID, "error", err)
	}
}

// HandleList handles GET /api/reports?auditId=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, err := uuid.Parse(r.URL.Query().Get("auditId"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "auditId must be a UUID"))
		return
	}
	reports, err := h.service.List(ctx, auditID)
	if err != nil {
		h.fail(ctx, w, "failed to list reports", err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

// HandleGet handles GET /api/reports/{reportID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "reportId must be a UUID"))
		return
	}
	report, err := h.service.Get(ctx, reportID)
	if err != nil {
		h.fail(ctx, w, "failed to load report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	log := h.logger.WarnContext
	if status >= http.StatusInternalServerError {
		log = h.logger.ErrorContext
	}
	log(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"user_id", requestcontext.UserID(ctx).String(),
		"error", err,
	)
	httputil.WriteError(w, err)
}

// findFlusher walks middleware wrappers down to a writer that can flush.
func findFlusher(w http.ResponseWriter) (http.Flusher, bool) {
	for w != nil {
		if f, ok := w.(http.Flusher); ok {
			return f, true
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return nil, false
		}
		w = u.Unwrap()
	}
	return nil, false
}
