package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ethicsaudit/internal/assessment/handler/mocks"
	"ethicsaudit/internal/assessment/models"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/testutil"
)

type AuditHandlerSuite struct {
	suite.Suite
	userID  uuid.UUID
	auditID uuid.UUID
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func (s *AuditHandlerSuite) SetupTest() {
	s.userID = uuid.New()
	s.auditID = uuid.New()
}

func (s *AuditHandlerSuite) newHandler(t *testing.T) (*mocks.MockService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return svc, r
}

func (s *AuditHandlerSuite) authed(req *http.Request) *http.Request {
	return testutil.WithUserID(req, s.userID.String())
}

func (s *AuditHandlerSuite) state(overall int) *models.AuditState {
	return &models.AuditState{
		Audit: models.Audit{ID: s.auditID, UserID: s.userID, Name: "a", Organization: "o", OverallScore: overall},
		Categories: []models.Category{
			{AuditID: s.auditID, Name: models.CategoryPrivacy, Score: overall},
		},
		Responses: []models.Response{
			{AuditID: s.auditID, QuestionID: "privacy-1", Category: models.CategoryPrivacy, Value: 5},
		},
	}
}

func (s *AuditHandlerSuite) TestResponseChange() {
	path := "/api/audits/" + s.auditID.String() + "/responses"

	s.T().Run("returns recomputed state - 200", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().
			ApplyResponseChange(gomock.Any(), s.auditID, models.CategoryPrivacy, "privacy-1", 5).
			Return(s.state(100), nil)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPut, path,
			map[string]any{"category": "privacy", "questionId": " privacy-1 ", "value": 5}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[AuditStateResponse](t, rr)
		assert.Equal(t, 100, got.Audit.OverallScore)
		assert.Equal(t, "industry-leading", got.OverallBand)
		require.Len(t, got.Categories, len(models.Catalog))
		assert.Equal(t, models.CategoryTransparency, got.Categories[0].Name)
		assert.Equal(t, 0, got.Categories[0].Score)
		assert.Equal(t, 100, got.Categories[1].Score)
	})

	s.T().Run("malformed json - 400", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().ApplyResponseChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := s.authed(testutil.NewRequest(t, http.MethodPut, path))
		req.Body = io.NopCloser(strings.NewReader("{bad"))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.T().Run("invalid audit id - 400", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().ApplyResponseChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPut, "/api/audits/not-a-uuid/responses",
			map[string]any{"category": "privacy", "questionId": "privacy-1", "value": 5}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.T().Run("service errors map to status", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   dErrors.Code
		}{
			{dErrors.New(dErrors.CodeValidation, "value must be between 1 and 5"), http.StatusBadRequest, dErrors.CodeValidation},
			{dErrors.New(dErrors.CodeForbidden, "audit belongs to another user"), http.StatusForbidden, dErrors.CodeForbidden},
			{dErrors.New(dErrors.CodeNotFound, "audit not found"), http.StatusNotFound, dErrors.CodeNotFound},
			{dErrors.Wrap(errors.New("conn reset"), dErrors.CodeUpstreamFetch, "failed to upsert response"), http.StatusBadGateway, dErrors.CodeUpstreamFetch},
		}
		for _, tc := range cases {
			svc, router := s.newHandler(t)
			svc.EXPECT().ApplyResponseChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			req := s.authed(testutil.NewJSONRequest(t, http.MethodPut, path,
				map[string]any{"category": "privacy", "questionId": "privacy-1", "value": 9}))
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatusAndError(t, rr, tc.status, string(tc.code))
		}
	})
}

func (s *AuditHandlerSuite) TestCreateAudit() {
	s.T().Run("created - 201", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().
			CreateAudit(gomock.Any(), models.CreateAuditRequest{Name: "Q3", Organization: "Acme"}).
			Return(&models.Audit{ID: s.auditID, Name: "Q3", Organization: "Acme", Status: models.AuditStatusDraft}, nil)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPost, "/api/audits",
			map[string]string{"name": " Q3 ", "organization": "Acme"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		got := testutil.UnmarshalResponse[models.Audit](t, rr)
		assert.Equal(t, s.auditID, got.ID)
	})

	s.T().Run("missing organization - 400", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().CreateAudit(gomock.Any(), gomock.Any()).Times(0)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPost, "/api/audits",
			map[string]string{"name": "Q3"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *AuditHandlerSuite) TestListAudits() {
	svc, router := s.newHandler(s.T())
	svc.EXPECT().ListAudits(gomock.Any()).Return(nil, nil)

	rr := testutil.DoRequest(router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/audits")))

	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`[]`, string(testutil.ReadBody(s.T(), rr)))
}

func (s *AuditHandlerSuite) TestGetState() {
	svc, router := s.newHandler(s.T())
	svc.EXPECT().GetState(gomock.Any(), s.auditID).Return(s.state(60), nil)

	rr := testutil.DoRequest(router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/api/audits/"+s.auditID.String())))

	testutil.AssertStatusOK(s.T(), rr)
	got := testutil.UnmarshalResponse[AuditStateResponse](s.T(), rr)
	s.Equal("developing", got.OverallBand)
	s.Len(got.Responses, 1)
}

func (s *AuditHandlerSuite) TestUpdateFields() {
	s.T().Run("accepted - 202", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().ScheduleSave(gomock.Any(), s.auditID, models.AuditFields{
			Name:             "Renamed",
			Organization:     "Acme",
			Status:           models.AuditStatusInProgress,
			EthicalFramework: "OECD",
		}).Return(nil)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPatch, "/api/audits/"+s.auditID.String(), map[string]string{
			"name": "Renamed", "organization": "Acme", "status": "in_progress", "ethicalFramework": "OECD",
		}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusAccepted)
	})

	s.T().Run("unknown status - 400", func(t *testing.T) {
		svc, router := s.newHandler(t)
		svc.EXPECT().ScheduleSave(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := s.authed(testutil.NewJSONRequest(t, http.MethodPatch, "/api/audits/"+s.auditID.String(),
			map[string]string{"name": "n", "organization": "o", "status": "finished"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *AuditHandlerSuite) TestInterviewsAndRACI() {
	svc, router := s.newHandler(s.T())
	svc.EXPECT().AddInterview(gomock.Any(), s.auditID, models.InterviewRequest{StaffName: "Dana", Position: "CTO"}).
		Return(&models.Interview{ID: uuid.New(), AuditID: s.auditID, StaffName: "Dana", Position: "CTO"}, nil)
	svc.EXPECT().PutRACIEntry(gomock.Any(), s.auditID, models.RACIRequest{Role: "CTO", Responsibility: "Risk", AssignmentType: "a"}).
		Return(&models.RACIEntry{ID: uuid.New(), AuditID: s.auditID, Role: "CTO", Responsibility: "Risk", AssignmentType: models.AssignmentAccountable}, nil)

	rr := testutil.DoRequest(router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
		"/api/audits/"+s.auditID.String()+"/interviews", map[string]string{"staffName": "Dana", "position": "CTO"})))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	rr = testutil.DoRequest(router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPut,
		"/api/audits/"+s.auditID.String()+"/raci", map[string]string{"role": "CTO", "responsibility": "Risk", "assignmentType": "a"})))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "assignmentType", "A")

	rr = testutil.DoRequest(router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPut,
		"/api/audits/"+s.auditID.String()+"/raci", map[string]string{"role": "CTO", "responsibility": "Risk", "assignmentType": "X"})))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
}

func (s *AuditHandlerSuite) TestCatalog() {
	_, router := s.newHandler(s.T())
	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/api/catalog"))

	testutil.AssertStatusOK(s.T(), rr)
	got := testutil.UnmarshalResponse[CatalogResponse](s.T(), rr)
	s.Len(got.Categories, 6)
	s.Len(got.Scale, 5)
	s.True(strings.HasPrefix(got.Scale[0].Label, "Not implemented"))
	for _, c := range got.Categories {
		s.Len(c.Questions, 4)
	}
}
