package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"ethicsaudit/internal/assessment/metrics"
	"ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/assessment/scoring"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/sentinel"
	"ethicsaudit/pkg/requestcontext"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service owns every write path of an audit. Response changes recompute the
// affected category score and the overall score inside one transaction while
// holding the audit's lock, then return the re-read persisted state.
type Service struct {
	store   Store
	tx      StoreTx
	locker  Locker
	saver   *Saver
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithSaver routes ScheduleSave through a debounced saver. Without one,
// field edits are written synchronously.
func WithSaver(saver *Saver) Option {
	return func(s *Service) {
		s.saver = saver
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func New(store Store, tx StoreTx, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("assessment store is required")
	}
	if tx == nil {
		return nil, errors.New("assessment transaction boundary is required")
	}
	s := &Service{
		store:  store,
		tx:     tx,
		locker: NewShardedLocker(),
		logger: slog.Default(),
		tracer: otel.Tracer("ethicsaudit/assessment"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// PersistFields writes the editable fields of an audit. It is the SaveFunc of
// the debounced saver and bypasses authorization, which ScheduleSave performs.
func (s *Service) PersistFields(ctx context.Context, auditID uuid.UUID, fields models.AuditFields) error {
	if err := s.store.UpdateAuditFields(ctx, auditID, fields, time.Now()); err != nil {
		return upstream(err, "failed to save audit fields")
	}
	return nil
}

// ApplyResponseChange records one Likert answer and returns the authoritative
// audit state. Steps run in order (category score, response, overall score)
// and any failure rolls all of them back.
func (s *Service) ApplyResponseChange(ctx context.Context, auditID uuid.UUID, category, questionID string, value int) (state *models.AuditState, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "assessment.ApplyResponseChange", trace.WithAttributes(
		attribute.String("audit.id", auditID.String()),
		attribute.String("audit.category", category),
		attribute.String("audit.question_id", questionID),
	))
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.MessageOf(err))
		}
		s.metrics.ObserveResponseChange(start, outcome)
		span.End()
	}()

	questionID = strings.TrimSpace(questionID)
	if err := validateResponseChange(category, questionID, value); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, auditID); err != nil {
		return nil, err
	}

	lockStart := time.Now()
	unlock, err := s.locker.Lock(ctx, auditID.String())
	if err != nil {
		return nil, upstream(err, "failed to acquire audit lock")
	}
	defer unlock()
	s.metrics.ObserveLockWait(lockStart)

	now := requestcontext.Now(ctx)
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		return applyResponse(ctx, store, auditID, category, questionID, value, now)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "response change rolled back",
			"audit_id", auditID.String(),
			"question_id", questionID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, upstream(err, "failed to apply response change")
	}

	return s.loadState(ctx, s.store, auditID)
}

func applyResponse(ctx context.Context, store Store, auditID uuid.UUID, category, questionID string, value int, now time.Time) error {
	existing, err := store.FindResponse(ctx, auditID, questionID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
	case err != nil:
		return upstream(err, "failed to load existing response")
	case existing.Category != category:
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("question %s belongs to category %s", questionID, existing.Category))
	}

	responses, err := store.ListResponses(ctx, auditID)
	if err != nil {
		return upstream(err, "failed to load responses")
	}
	values := make(map[string]int)
	for _, r := range responses {
		if r.Category == category {
			values[r.QuestionID] = r.Value
		}
	}
	values[questionID] = value

	if err := store.UpsertCategory(ctx, models.Category{
		AuditID:   auditID,
		Name:      category,
		Score:     scoring.CategoryScoreFromResponses(values),
		UpdatedAt: now,
	}); err != nil {
		return upstream(err, "failed to upsert category score")
	}

	if err := store.UpsertResponse(ctx, models.Response{
		AuditID:    auditID,
		QuestionID: questionID,
		Category:   category,
		Value:      value,
		UpdatedAt:  now,
	}); err != nil {
		return upstream(err, "failed to upsert response")
	}

	categories, err := store.ListCategories(ctx, auditID)
	if err != nil {
		return upstream(err, "failed to load category scores")
	}
	scores := make([]int, len(categories))
	for i, c := range categories {
		scores[i] = c.Score
	}
	if err := store.UpdateOverallScore(ctx, auditID, scoring.OverallScore(scores), now); err != nil {
		return upstream(err, "failed to update overall score")
	}
	return nil
}

func validateResponseChange(category, questionID string, value int) error {
	if _, ok := models.LookupCategory(category); !ok {
		return dErrors.New(dErrors.CodeValidation, "unknown category: "+category)
	}
	if questionID == "" {
		return dErrors.New(dErrors.CodeValidation, "questionId is required")
	}
	if !scoring.ValidValue(value) {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("value must be between %d and %d", scoring.MinValue, scoring.MaxValue))
	}
	for _, c := range models.Catalog {
		for _, q := range c.Questions {
			if q.ID == questionID && c.Name != category {
				return dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("question %s belongs to category %s", questionID, c.Name))
			}
		}
	}
	return nil
}

// GetState returns the persisted state of an audit owned by the caller.
func (s *Service) GetState(ctx context.Context, auditID uuid.UUID) (*models.AuditState, error) {
	if _, err := s.authorize(ctx, auditID); err != nil {
		return nil, err
	}
	return s.loadState(ctx, s.store, auditID)
}

func (s *Service) loadState(ctx context.Context, store Store, auditID uuid.UUID) (*models.AuditState, error) {
	audit, err := store.FindAudit(ctx, auditID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "audit not found")
		}
		return nil, upstream(err, "failed to reload audit")
	}
	categories, err := store.ListCategories(ctx, auditID)
	if err != nil {
		return nil, upstream(err, "failed to reload category scores")
	}
	responses, err := store.ListResponses(ctx, auditID)
	if err != nil {
		return nil, upstream(err, "failed to reload responses")
	}
	SortCategories(categories)
	SortResponses(responses)
	return &models.AuditState{
		Audit:      *audit,
		Categories: categories,
		Responses:  responses,
	}, nil
}

// SortCategories orders categories by catalog position, then by name.
func SortCategories(categories []models.Category) {
	slices.SortStableFunc(categories, func(a, b models.Category) int {
		if d := models.CategoryIndex(a.Name) - models.CategoryIndex(b.Name); d != 0 {
			return d
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// SortResponses orders responses by question id.
func SortResponses(responses []models.Response) {
	slices.SortStableFunc(responses, func(a, b models.Response) int {
		return strings.Compare(a.QuestionID, b.QuestionID)
	})
}

// CreateAudit opens a draft audit owned by the caller.
func (s *Service) CreateAudit(ctx context.Context, req models.CreateAuditRequest) (*models.Audit, error) {
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	req.Normalize()
	if req.Name == "" || req.Organization == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name and organization are required")
	}

	now := requestcontext.Now(ctx)
	audit := &models.Audit{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Organization: req.Organization,
		Description:  req.Description,
		Status:       models.AuditStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateAudit(ctx, audit); err != nil {
		return nil, upstream(err, "failed to create audit")
	}
	s.logger.InfoContext(ctx, "audit created",
		"audit_id", audit.ID.String(),
		"user_id", userID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return audit, nil
}

// ListAudits returns the caller's audits, newest first.
func (s *Service) ListAudits(ctx context.Context) ([]models.Audit, error) {
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	audits, err := s.store.ListAudits(ctx, userID)
	if err != nil {
		return nil, upstream(err, "failed to list audits")
	}
	return audits, nil
}

// ScheduleSave validates and authorizes a full field edit and hands it to the
// debounced saver. The write happens later; only the last state of a burst of
// edits is guaranteed to be persisted.
func (s *Service) ScheduleSave(ctx context.Context, auditID uuid.UUID, fields models.AuditFields) error {
	audit, err := s.authorize(ctx, auditID)
	if err != nil {
		return err
	}
	fields, err = normalizeFields(fields, audit)
	if err != nil {
		return err
	}
	if s.saver == nil {
		return s.PersistFields(ctx, auditID, fields)
	}
	if err := s.saver.ScheduleSave(auditID, fields); err != nil {
		return dErrors.Wrap(err, dErrors.CodeConflict, "audit edits are no longer accepted")
	}
	return nil
}

func normalizeFields(f models.AuditFields, current *models.Audit) (models.AuditFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Organization = strings.TrimSpace(f.Organization)
	if f.Name == "" || f.Organization == "" {
		return f, dErrors.New(dErrors.CodeValidation, "name and organization are required")
	}
	if f.Status == "" {
		f.Status = current.Status
	}
	if !f.Status.IsValid() {
		return f, dErrors.New(dErrors.CodeValidation, "invalid status: "+string(f.Status))
	}
	return f, nil
}

// AddInterview logs a stakeholder interview for the audit.
func (s *Service) AddInterview(ctx context.Context, auditID uuid.UUID, req models.InterviewRequest) (*models.Interview, error) {
	if _, err := s.authorize(ctx, auditID); err != nil {
		return nil, err
	}
	req.StaffName = strings.TrimSpace(req.StaffName)
	if req.StaffName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "staffName is required")
	}
	interview := &models.Interview{
		ID:            uuid.New(),
		AuditID:       auditID,
		StaffName:     req.StaffName,
		Position:      strings.TrimSpace(req.Position),
		InterviewDate: req.InterviewDate,
		Notes:         req.Notes,
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := s.store.CreateInterview(ctx, interview); err != nil {
		return nil, upstream(err, "failed to save interview")
	}
	return interview, nil
}

// PutRACIEntry sets the assignment of one role to one responsibility.
func (s *Service) PutRACIEntry(ctx context.Context, auditID uuid.UUID, req models.RACIRequest) (*models.RACIEntry, error) {
	if _, err := s.authorize(ctx, auditID); err != nil {
		return nil, err
	}
	role := strings.TrimSpace(req.Role)
	responsibility := strings.TrimSpace(req.Responsibility)
	if role == "" || responsibility == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "role and responsibility are required")
	}
	assignment, ok := models.ParseAssignmentType(req.AssignmentType)
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "assignmentType must be one of R, A, C, I or empty")
	}
	entry := &models.RACIEntry{
		ID:             uuid.New(),
		AuditID:        auditID,
		Role:           role,
		Responsibility: responsibility,
		AssignmentType: assignment,
	}
	if err := s.store.UpsertRACIEntry(ctx, entry); err != nil {
		return nil, upstream(err, "failed to save RACI entry")
	}
	return entry, nil
}

// authorize loads the audit and checks that the caller owns it.
func (s *Service) authorize(ctx context.Context, auditID uuid.UUID) (*models.Audit, error) {
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	audit, err := s.store.FindAudit(ctx, auditID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "audit not found")
		}
		return nil, upstream(err, "failed to load audit")
	}
	if !audit.IsOwnedBy(userID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "audit belongs to another user")
	}
	return audit, nil
}

// upstream wraps a store failure unless it already carries a domain code.
func upstream(err error, message string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, message)
}
