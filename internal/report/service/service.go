package service

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"

	assessment "ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/report/metrics"
	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/ports"
	"ethicsaudit/internal/report/prompt"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/sentinel"
	"ethicsaudit/pkg/requestcontext"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	progressInitializing = 5
	progressFetching     = 10
	progressProcessing   = 20
	progressGenerating   = 30
	progressContentCap   = 90
	progressSaving       = 95

	// expectedChunks is a rough size of a report in stream increments. It
	// only shapes the progress estimate.
	expectedChunks = 200

	defaultPublishTimeout = 5 * time.Second

	outcomeComplete  = "complete"
	outcomeCancelled = "cancelled"
)

// ContentProgress estimates progress after n content increments, rising from
// 30 towards 90 and never past it.
func ContentProgress(n int) int {
	return min(progressContentCap, progressGenerating+n*(progressContentCap-progressGenerating)/expectedChunks)
}

// Service orchestrates report generation and serves stored reports.
type Service struct {
	reports        Store
	audits         ports.AuditReader
	generator      ports.Generator
	publisher      ports.EventPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	publishTimeout time.Duration
}

type Option func(*Service)

// WithPublisher announces every saved report. Without one nothing is
// published.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
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

func New(reports Store, audits ports.AuditReader, generator ports.Generator, opts ...Option) (*Service, error) {
	if reports == nil {
		return nil, errors.New("report store is required")
	}
	if audits == nil {
		return nil, errors.New("audit reader is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	s := &Service{
		reports:        reports,
		audits:         audits,
		generator:      generator,
		logger:         slog.Default(),
		tracer:         otel.Tracer("ethicsaudit/report"),
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Generate returns the progress events of one report generation. The work
// runs while the sequence is ranged over; breaking out of the loop or
// cancelling ctx stops generation and nothing is persisted. Every run ends
// with exactly one complete or error event unless the consumer went away.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) iter.Seq[models.ProgressEvent] {
	return func(yield func(models.ProgressEvent) bool) {
		start := time.Now()
		ctx, span := s.tracer.Start(ctx, "report.Generate", trace.WithAttributes(
			attribute.String("audit.id", req.AuditID.String()),
		))
		defer span.End()

		s.metrics.StreamStarted()
		g := &generation{svc: s, req: req, yield: yield, span: span}
		outcome := g.run(ctx)
		s.metrics.StreamFinished(outcome, start)

		span.SetAttributes(attribute.String("report.outcome", outcome))
		if outcome != outcomeComplete && outcome != outcomeCancelled {
			span.SetStatus(codes.Error, outcome)
		}
	}
}

// generation is the state of one Generate run.
type generation struct {
	svc   *Service
	req   models.GenerateRequest
	yield func(models.ProgressEvent) bool
	span  trace.Span
}

func (g *generation) phase(phase models.Phase, message string, progress int) bool {
	g.span.AddEvent(string(phase))
	return g.yield(models.PhaseEvent(phase, message, progress))
}

// fail emits the terminal error event and returns its code as the outcome.
func (g *generation) fail(ctx context.Context, code dErrors.Code, message string, err error) string {
	details := ""
	if err != nil {
		details = dErrors.MessageOf(err)
		g.span.RecordError(err)
	}
	g.svc.logger.WarnContext(ctx, "report generation failed",
		"request_id", requestcontext.RequestID(ctx),
		"audit_id", g.req.AuditID.String(),
		"code", string(code),
		"error", err,
	)
	g.yield(models.ErrorEvent(string(code), message, details))
	return string(code)
}

func (g *generation) run(ctx context.Context) string {
	s := g.svc
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return g.fail(ctx, dErrors.CodeUnauthorized, "Unauthorized - Please log in to generate reports", nil)
	}
	if g.req.AuditID == uuid.Nil {
		return g.fail(ctx, dErrors.CodeValidation, "Audit ID is required", nil)
	}
	if _, err := s.authorize(ctx, g.req.AuditID); err != nil {
		return g.fail(ctx, dErrors.CodeOf(err), dErrors.MessageOf(err), nil)
	}

	if !g.phase(models.PhaseInitializing, "Starting report generation...", progressInitializing) {
		return outcomeCancelled
	}

	if !g.phase(models.PhaseFetching, "Fetching audit data...", progressFetching) {
		return outcomeCancelled
	}
	data, err := s.fetch(ctx, g.req.AuditID)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		return g.fail(ctx, dErrors.CodeUpstreamFetch, "Error fetching audit data", err)
	}

	if !g.phase(models.PhaseProcessing, "Processing audit data...", progressProcessing) {
		return outcomeCancelled
	}
	snap := models.NewSnapshot(*data.audit, data.categories, data.responses, data.interviews, data.raci)
	p := prompt.Build(snap, g.req.Title, g.req.Description, g.req.CustomInstructions)

	if !g.phase(models.PhaseGenerating, "Generating report content...", progressGenerating) {
		return outcomeCancelled
	}
	content, outcome := g.relay(ctx, p)
	if outcome != "" {
		return outcome
	}
	if ctx.Err() != nil {
		return outcomeCancelled
	}

	if !g.phase(models.PhaseSaving, "Saving report...", progressSaving) {
		return outcomeCancelled
	}
	report := &models.Report{
		ID:                 uuid.New(),
		AuditID:            g.req.AuditID,
		UserID:             userID,
		Title:              g.req.Title,
		Description:        g.req.Description,
		Content:            content,
		CustomInstructions: g.req.CustomInstructions,
		Status:             models.ReportStatusCompleted,
		Version:            models.InitialVersion,
		CreatedAt:          requestcontext.Now(ctx),
	}
	if err := s.save(ctx, report); err != nil {
		return g.fail(ctx, dErrors.CodeReportNotSaved, "Failed to save report",
			dErrors.Wrap(err, dErrors.CodeReportNotSaved, "The report was generated but could not be saved. Please try again."))
	}

	s.logger.InfoContext(ctx, "report generated",
		"request_id", requestcontext.RequestID(ctx),
		"audit_id", report.AuditID.String(),
		"report_id", report.ID.String(),
		"content_length", len(content),
	)
	g.yield(models.CompleteEvent(report.ID.String()))
	s.publish(ctx, *report)
	return outcomeComplete
}

// relay copies backend increments to the consumer. A non-empty outcome means
// the run ended here.
func (g *generation) relay(ctx context.Context, p models.Prompt) (string, string) {
	s := g.svc
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "report.generate")
	defer span.End()
	defer s.metrics.ObservePhase(string(models.PhaseGenerating), start)

	tokens, err := s.generator.Stream(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return "", outcomeCancelled
		}
		return "", g.fail(ctx, dErrors.CodeGenerationBackend, "Report generation failed", err)
	}
	defer func() {
		if err := tokens.Close(); err != nil {
			s.logger.DebugContext(ctx, "closing generation stream", "error", err)
		}
	}()

	var content strings.Builder
	chunks := 0
	for {
		text, err := tokens.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", outcomeCancelled
			}
			return "", g.fail(ctx, dErrors.CodeGenerationBackend, "Report generation failed", err)
		}
		if text == "" {
			continue
		}
		chunks++
		content.WriteString(text)
		s.metrics.IncrementChunks()
		if !g.yield(models.ContentEvent(text, ContentProgress(chunks))) {
			return "", outcomeCancelled
		}
	}
	span.SetAttributes(attribute.Int("report.chunks", chunks))
	return content.String(), ""
}

type auditData struct {
	audit      *assessment.Audit
	categories []assessment.Category
	responses  []assessment.Response
	interviews []assessment.Interview
	raci       []assessment.RACIEntry
}

// fetch loads every sub-record of the audit in parallel. The first failure
// cancels the others.
func (s *Service) fetch(ctx context.Context, auditID uuid.UUID) (*auditData, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "report.fetch")
	defer span.End()
	defer s.metrics.ObservePhase(string(models.PhaseFetching), start)

	g, ctx := errgroup.WithContext(ctx)
	data := &auditData{}

	g.Go(func() error {
		audit, err := s.audits.FindAudit(ctx, auditID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load audit")
		}
		data.audit = audit
		return nil
	})
	g.Go(func() error {
		categories, err := s.audits.ListCategories(ctx, auditID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load category scores")
		}
		data.categories = categories
		return nil
	})
	g.Go(func() error {
		responses, err := s.audits.ListResponses(ctx, auditID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load responses")
		}
		data.responses = responses
		return nil
	})
	g.Go(func() error {
		interviews, err := s.audits.ListInterviews(ctx, auditID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load interviews")
		}
		data.interviews = interviews
		return nil
	})
	g.Go(func() error {
		raci, err := s.audits.ListRACI(ctx, auditID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load RACI matrix")
		}
		data.raci = raci
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}

func (s *Service) save(ctx context.Context, report *models.Report) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "report.save")
	defer span.End()
	defer s.metrics.ObservePhase(string(models.PhaseSaving), start)

	if err := s.reports.Create(ctx, report); err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "generated report could not be saved",
			"request_id", requestcontext.RequestID(ctx),
			"audit_id", report.AuditID.String(),
			"content_length", len(report.Content),
			"error", err,
		)
		return err
	}
	return nil
}

// publish is best effort: failures are logged and counted, never surfaced.
func (s *Service) publish(ctx context.Context, report models.Report) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.PublishReportGenerated(ctx, report); err != nil {
		s.metrics.IncrementPublished("error")
		s.logger.WarnContext(ctx, "failed to publish report event",
			"report_id", report.ID.String(),
			"error", err,
		)
		return
	}
	s.metrics.IncrementPublished("ok")
}

// List returns the reports of an audit owned by the caller, newest first.
func (s *Service) List(ctx context.Context, auditID uuid.UUID) ([]models.Report, error) {
	if _, err := s.authorize(ctx, auditID); err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByAudit(ctx, auditID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to list reports")
	}
	return reports, nil
}

// Get returns one report created by the caller.
func (s *Service) Get(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load report")
	}
	if report.UserID != userID {
		return nil, dErrors.New(dErrors.CodeForbidden, "report belongs to another user")
	}
	return report, nil
}

func (s *Service) authorize(ctx context.Context, auditID uuid.UUID) (*assessment.Audit, error) {
	userID := requestcontext.UserID(ctx)
	if userID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	audit, err := s.audits.FindAudit(ctx, auditID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "audit not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to load audit")
	}
	if !audit.IsOwnedBy(userID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "audit belongs to another user")
	}
	return audit, nil
}
