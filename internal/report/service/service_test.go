package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	assessment "ethicsaudit/internal/assessment/models"
	assessmentsvc "ethicsaudit/internal/assessment/service"
	assessmentstore "ethicsaudit/internal/assessment/store"
	"ethicsaudit/internal/report/metrics"
	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/ports"
	portmocks "ethicsaudit/internal/report/ports/mocks"
	"ethicsaudit/internal/report/prompt"
	"ethicsaudit/internal/report/service"
	"ethicsaudit/internal/report/service/mocks"
	"ethicsaudit/internal/report/store"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/requestcontext"
	"ethicsaudit/pkg/testutil"
)

// fakeGenerator replays tokens. With hang set it blocks after the last token
// until the stream context is cancelled.
type fakeGenerator struct {
	tokens   []string
	startErr error
	recvErr  error
	hang     bool

	mu      sync.Mutex
	prompts []models.Prompt
	closed  atomic.Int32
}

func (g *fakeGenerator) Stream(ctx context.Context, p models.Prompt) (ports.TokenStream, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, p)
	g.mu.Unlock()
	if g.startErr != nil {
		return nil, g.startErr
	}
	return &fakeTokens{ctx: ctx, gen: g}, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeTokens struct {
	ctx  context.Context
	gen  *fakeGenerator
	next int
}

func (t *fakeTokens) Recv() (string, error) {
	if t.next < len(t.gen.tokens) {
		tok := t.gen.tokens[t.next]
		t.next++
		return tok, nil
	}
	if t.gen.recvErr != nil {
		return "", t.gen.recvErr
	}
	if t.gen.hang {
		<-t.ctx.Done()
		return "", t.ctx.Err()
	}
	return "", io.EOF
}

func (t *fakeTokens) Close() error {
	t.gen.closed.Add(1)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func collect(seq func(func(models.ProgressEvent) bool)) []models.ProgressEvent {
	var events []models.ProgressEvent
	for ev := range seq {
		events = append(events, ev)
	}
	return events
}

type GenerateSuite struct {
	suite.Suite
	audits    *assessmentstore.InMemoryStore
	reports   *store.InMemoryStore
	generator *fakeGenerator
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	owner     uuid.UUID
	ctx       context.Context
	audit     *assessment.Audit
}

func TestGenerateSuite(t *testing.T) {
	suite.Run(t, new(GenerateSuite))
}

func (s *GenerateSuite) SetupTest() {
	s.audits = assessmentstore.NewInMemory()
	s.reports = store.NewInMemory()
	s.generator = &fakeGenerator{tokens: []string{"Hello", "", " world"}}
	s.registry = prometheus.NewRegistry()
	s.metrics = metrics.New(s.registry)
	s.owner = uuid.New()
	s.ctx = requestcontext.WithUserID(context.Background(), s.owner)

	audits, err := assessmentsvc.New(s.audits, s.audits, assessmentsvc.WithLogger(discardLogger()))
	s.Require().NoError(err)
	audit, err := audits.CreateAudit(s.ctx, assessment.CreateAuditRequest{Name: "Q3 audit", Organization: "Acme"})
	s.Require().NoError(err)
	_, err = audits.ApplyResponseChange(s.ctx, audit.ID, assessment.CategoryPrivacy, "privacy-1", 4)
	s.Require().NoError(err)
	s.audit = audit
}

func (s *GenerateSuite) newService(opts ...service.Option) *service.Service {
	opts = append([]service.Option{
		service.WithLogger(discardLogger()),
		service.WithMetrics(s.metrics),
	}, opts...)
	svc, err := service.New(s.reports, s.audits, s.generator, opts...)
	s.Require().NoError(err)
	return svc
}

func (s *GenerateSuite) request() models.GenerateRequest {
	return models.GenerateRequest{AuditID: s.audit.ID, Title: "Board summary", Description: "For the board"}
}

func (s *GenerateSuite) TestHappyPath() {
	ctrl := gomock.NewController(s.T())
	publisher := portmocks.NewMockEventPublisher(ctrl)
	var published models.Report
	publisher.EXPECT().
		PublishReportGenerated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.Report) error {
			published = r
			return nil
		})
	svc := s.newService(service.WithPublisher(publisher))

	testutil.Given(s.T(), "an audit with one answered question", func(t *testing.T) {
		testutil.When(t, "a report is generated to completion", func(t *testing.T) {
			events := collect(svc.Generate(s.ctx, s.request()))

			testutil.Then(t, "the phases arrive in order and the stream completes", func(t *testing.T) {
				require.Len(t, events, 8)
				assert.Equal(t, models.PhaseEvent(models.PhaseInitializing, "Starting report generation...", 5), events[0])
				assert.Equal(t, models.PhaseEvent(models.PhaseFetching, "Fetching audit data...", 10), events[1])
				assert.Equal(t, models.PhaseEvent(models.PhaseProcessing, "Processing audit data...", 20), events[2])
				assert.Equal(t, models.PhaseEvent(models.PhaseGenerating, "Generating report content...", 30), events[3])
				assert.Equal(t, "Hello", events[4].Text)
				assert.Equal(t, " world", events[5].Text)
				assert.Equal(t, models.PhaseEvent(models.PhaseSaving, "Saving report...", 95), events[6])

				last := events[7]
				assert.Equal(t, models.KindComplete, last.Kind())
				assert.Equal(t, 100, last.Progress)
				assert.NotEmpty(t, last.ReportID)
			})

			testutil.Then(t, "exactly one report is stored with the streamed content", func(t *testing.T) {
				require.Equal(t, 1, s.reports.Count())
				id, err := uuid.Parse(events[7].ReportID)
				require.NoError(t, err)
				report, err := s.reports.FindByID(s.ctx, id)
				require.NoError(t, err)
				assert.Equal(t, "Hello world", report.Content)
				assert.Equal(t, models.InitialVersion, report.Version)
				assert.Equal(t, models.ReportStatusCompleted, report.Status)
				assert.Equal(t, s.owner, report.UserID)
				assert.Equal(t, "Board summary", report.Title)
				assert.Equal(t, report.ID, published.ID)
			})

			testutil.Then(t, "the backend saw the advisor prompt and the stream was closed", func(t *testing.T) {
				require.Equal(t, 1, s.generator.calls())
				assert.Equal(t, prompt.SystemPrompt, s.generator.prompts[0].System)
				assert.Contains(t, s.generator.prompts[0].User, "Board summary")
				assert.EqualValues(t, 1, s.generator.closed.Load())
			})
		})
	})

	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Generations.WithLabelValues("complete")))
	s.Equal(float64(2), promtest.ToFloat64(s.metrics.ChunksStreamed))
	s.Equal(float64(0), promtest.ToFloat64(s.metrics.ActiveStreams))
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.EventsPublished.WithLabelValues("ok")))
}

func (s *GenerateSuite) TestProgressIsMonotonic() {
	tokens := make([]string, 500)
	for i := range tokens {
		tokens[i] = "x"
	}
	s.generator.tokens = tokens
	svc := s.newService()

	events := collect(svc.Generate(s.ctx, s.request()))
	prev := 0
	for i, ev := range events {
		s.GreaterOrEqual(ev.Progress, prev, "event %d went backwards", i)
		prev = ev.Progress
		if ev.Kind() == models.KindContent {
			s.LessOrEqual(ev.Progress, 90)
		}
	}
	s.Equal(100, prev)
}

func (s *GenerateSuite) TestConsumerBreakPersistsNothing() {
	ctrl := gomock.NewController(s.T())
	// no publish expected
	publisher := portmocks.NewMockEventPublisher(ctrl)
	svc := s.newService(service.WithPublisher(publisher))

	var seen []models.ProgressEvent
	for ev := range svc.Generate(s.ctx, s.request()) {
		seen = append(seen, ev)
		if ev.Kind() == models.KindContent {
			break
		}
	}

	s.Len(seen, 5)
	s.Equal(0, s.reports.Count())
	s.EqualValues(1, s.generator.closed.Load())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Generations.WithLabelValues("cancelled")))
}

func (s *GenerateSuite) TestCancelledContextPersistsNothing() {
	s.generator.tokens = []string{"Hello"}
	s.generator.hang = true
	svc := s.newService()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var seen []models.ProgressEvent
	for ev := range svc.Generate(ctx, s.request()) {
		seen = append(seen, ev)
		if ev.Kind() == models.KindContent {
			cancel()
		}
	}

	s.Require().NotEmpty(seen)
	last := seen[len(seen)-1]
	s.Equal(models.KindContent, last.Kind(), "no terminal event after the client left")
	s.Equal(0, s.reports.Count())
	s.EqualValues(1, s.generator.closed.Load())
}

func (s *GenerateSuite) TestFetchFailure() {
	ctrl := gomock.NewController(s.T())
	reader := portmocks.NewMockAuditReader(ctrl)
	reader.EXPECT().FindAudit(gomock.Any(), s.audit.ID).Return(s.audit, nil).AnyTimes()
	reader.EXPECT().ListCategories(gomock.Any(), s.audit.ID).Return(nil, errors.New("connection reset"))
	reader.EXPECT().ListResponses(gomock.Any(), s.audit.ID).Return(nil, nil).AnyTimes()
	reader.EXPECT().ListInterviews(gomock.Any(), s.audit.ID).Return(nil, nil).AnyTimes()
	reader.EXPECT().ListRACI(gomock.Any(), s.audit.ID).Return(nil, nil).AnyTimes()

	svc, err := service.New(s.reports, reader, s.generator, service.WithLogger(discardLogger()))
	s.Require().NoError(err)

	events := collect(svc.Generate(s.ctx, s.request()))
	s.Require().Len(events, 3)
	last := events[2]
	s.Equal(models.KindError, last.Kind())
	s.Equal(string(dErrors.CodeUpstreamFetch), last.Code)
	s.Equal("Error fetching audit data", last.Error)
	s.Equal("failed to load category scores", last.Details)
	s.NotContains(last.Details, "connection reset")
	s.Zero(s.generator.calls())
}

func (s *GenerateSuite) TestBackendFailures() {
	tests := []struct {
		name      string
		gen       *fakeGenerator
		wantTexts int
	}{
		{name: "stream cannot start", gen: &fakeGenerator{startErr: dErrors.New(dErrors.CodeGenerationBackend, "failed to start generation")}},
		{name: "stream breaks midway", gen: &fakeGenerator{tokens: []string{"Hello"}, recvErr: errors.New("unexpected EOF")}, wantTexts: 1},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.generator = tt.gen
			svc := s.newService()

			events := collect(svc.Generate(s.ctx, s.request()))
			texts := 0
			for _, ev := range events {
				if ev.Kind() == models.KindContent {
					texts++
				}
			}
			last := events[len(events)-1]
			s.Equal(tt.wantTexts, texts)
			s.Equal(string(dErrors.CodeGenerationBackend), last.Code)
			s.Equal("Report generation failed", last.Error)
			s.Equal(0, s.reports.Count())
		})
	}
}

func (s *GenerateSuite) TestSaveFailure() {
	ctrl := gomock.NewController(s.T())
	reports := mocks.NewMockStore(ctrl)
	reports.EXPECT().
		Create(gomock.Any(), gomock.Cond(func(r *models.Report) bool { return r.Content == "Hello world" })).
		Return(errors.New("disk full"))

	svc, err := service.New(reports, s.audits, s.generator, service.WithLogger(discardLogger()))
	s.Require().NoError(err)

	events := collect(svc.Generate(s.ctx, s.request()))
	last := events[len(events)-1]
	s.Equal(models.KindError, last.Kind())
	s.Equal(string(dErrors.CodeReportNotSaved), last.Code)
	s.Equal("Failed to save report", last.Error)
	s.NotContains(last.Details, "disk full")
	for _, ev := range events {
		s.NotEqual(models.KindComplete, ev.Kind())
	}
}

func (s *GenerateSuite) TestPublishFailureIsTolerated() {
	ctrl := gomock.NewController(s.T())
	publisher := portmocks.NewMockEventPublisher(ctrl)
	publisher.EXPECT().PublishReportGenerated(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	svc := s.newService(service.WithPublisher(publisher))

	events := collect(svc.Generate(s.ctx, s.request()))
	s.Equal(models.KindComplete, events[len(events)-1].Kind())
	s.Equal(1, s.reports.Count())
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.EventsPublished.WithLabelValues("error")))
}

func (s *GenerateSuite) TestAuthorizationHappensBeforeAnyProgress() {
	tests := []struct {
		name     string
		ctx      context.Context
		auditID  uuid.UUID
		wantCode dErrors.Code
	}{
		{name: "anonymous", ctx: context.Background(), auditID: s.audit.ID, wantCode: dErrors.CodeUnauthorized},
		{name: "missing audit id", ctx: s.ctx, auditID: uuid.Nil, wantCode: dErrors.CodeValidation},
		{name: "unknown audit", ctx: s.ctx, auditID: uuid.New(), wantCode: dErrors.CodeNotFound},
		{name: "other user", ctx: requestcontext.WithUserID(context.Background(), uuid.New()), auditID: s.audit.ID, wantCode: dErrors.CodeForbidden},
	}
	svc := s.newService()
	for _, tt := range tests {
		s.Run(tt.name, func() {
			events := collect(svc.Generate(tt.ctx, models.GenerateRequest{AuditID: tt.auditID, Title: "x"}))
			s.Require().Len(events, 1)
			s.Equal(models.KindError, events[0].Kind())
			s.Equal(string(tt.wantCode), events[0].Code)
		})
	}
	s.Zero(s.generator.calls())
	s.Equal(0, s.reports.Count())
}

func (s *GenerateSuite) TestListAndGet() {
	svc := s.newService()
	collect(svc.Generate(s.ctx, s.request()))
	collect(svc.Generate(s.ctx, s.request()))

	reports, err := svc.List(s.ctx, s.audit.ID)
	s.Require().NoError(err)
	s.Len(reports, 2)

	got, err := svc.Get(s.ctx, reports[0].ID)
	s.Require().NoError(err)
	s.Equal(reports[0].ID, got.ID)

	stranger := requestcontext.WithUserID(context.Background(), uuid.New())
	_, err = svc.List(stranger, s.audit.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = svc.Get(stranger, reports[0].ID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = svc.Get(s.ctx, uuid.New())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = svc.Get(context.Background(), reports[0].ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestContentProgress(t *testing.T) {
	tests := []struct {
		chunks int
		want   int
	}{
		{0, 30},
		{1, 30},
		{100, 60},
		{200, 90},
		{1000, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.ContentProgress(tt.chunks), "chunks=%d", tt.chunks)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	gen := &fakeGenerator{}
	reports := store.NewInMemory()
	audits := assessmentstore.NewInMemory()

	_, err := service.New(nil, audits, gen)
	assert.Error(t, err)
	_, err = service.New(reports, nil, gen)
	assert.Error(t, err)
	_, err = service.New(reports, audits, nil)
	assert.Error(t, err)
}
