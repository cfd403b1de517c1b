package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ethicsaudit/internal/assessment/models"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/httputil"
	"ethicsaudit/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service

// Service is the audit workflow used by the HTTP surface.
type Service interface {
	CreateAudit(ctx context.Context, req models.CreateAuditRequest) (*models.Audit, error)
	ListAudits(ctx context.Context) ([]models.Audit, error)
	GetState(ctx context.Context, auditID uuid.UUID) (*models.AuditState, error)
	ApplyResponseChange(ctx context.Context, auditID uuid.UUID, category, questionID string, value int) (*models.AuditState, error)
	ScheduleSave(ctx context.Context, auditID uuid.UUID, fields models.AuditFields) error
	AddInterview(ctx context.Context, auditID uuid.UUID, req models.InterviewRequest) (*models.Interview, error)
	PutRACIEntry(ctx context.Context, auditID uuid.UUID, req models.RACIRequest) (*models.RACIEntry, error)
}

// Handler serves the audit endpoints. Routes expect RequireAuth upstream.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the audit routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/catalog", h.HandleCatalog)
	r.Route("/api/audits", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{auditID}", func(r chi.Router) {
			r.Get("/", h.HandleGetState)
			r.Patch("/", h.HandleUpdateFields)
			r.Put("/responses", h.HandleResponseChange)
			r.Post("/interviews", h.HandleAddInterview)
			r.Put("/raci", h.HandlePutRACI)
		})
	})
}

// HandleCatalog handles GET /api/catalog.
func (h *Handler) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, catalogResponse())
}

// HandleCreate handles POST /api/audits.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateAuditRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	audit, err := h.service.CreateAudit(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to create audit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, audit)
}

// HandleList handles GET /api/audits.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	audits, err := h.service.ListAudits(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list audits", err)
		return
	}
	if audits == nil {
		audits = []models.Audit{}
	}
	httputil.WriteJSON(w, http.StatusOK, audits)
}

// HandleGetState handles GET /api/audits/{auditID}.
func (h *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	state, err := h.service.GetState(ctx, auditID)
	if err != nil {
		h.fail(ctx, w, "failed to load audit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromState(state))
}

// HandleResponseChange handles PUT /api/audits/{auditID}/responses and
// returns the recomputed state.
func (h *Handler) HandleResponseChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResponseChangeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	state, err := h.service.ApplyResponseChange(ctx, auditID, req.Category, req.QuestionID, req.Value)
	if err != nil {
		h.fail(ctx, w, "response change failed", err)
		return
	}
	h.logger.InfoContext(ctx, "response recorded",
		"request_id", requestID,
		"audit_id", auditID.String(),
		"question_id", req.QuestionID,
		"overall_score", state.Audit.OverallScore,
	)
	httputil.WriteJSON(w, http.StatusOK, FromState(state))
}

// HandleUpdateFields handles PATCH /api/audits/{auditID}. The write is
// debounced, so success is 202.
func (h *Handler) HandleUpdateFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateFieldsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.ScheduleSave(ctx, auditID, req.toModel()); err != nil {
		h.fail(ctx, w, "failed to schedule save", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleAddInterview handles POST /api/audits/{auditID}/interviews.
func (h *Handler) HandleAddInterview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[InterviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	interview, err := h.service.AddInterview(ctx, auditID, req.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to add interview", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, interview)
}

// HandlePutRACI handles PUT /api/audits/{auditID}/raci.
func (h *Handler) HandlePutRACI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := h.auditID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RACIRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	entry, err := h.service.PutRACIEntry(ctx, auditID, req.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to save RACI entry", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) auditID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "auditID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "auditId must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// fail logs at warn for client errors and at error for everything else.
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
