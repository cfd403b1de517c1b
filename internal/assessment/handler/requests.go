package handler

import (
	"strings"
	"time"

	"ethicsaudit/internal/assessment/models"
	dErrors "ethicsaudit/pkg/domain-errors"
)

// CreateAuditRequest is the body of POST /api/audits.
type CreateAuditRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

func (r *CreateAuditRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Organization = strings.TrimSpace(r.Organization)
	if r.Name == "" || r.Organization == "" {
		return dErrors.New(dErrors.CodeValidation, "name and organization are required")
	}
	return nil
}

func (r *CreateAuditRequest) toModel() models.CreateAuditRequest {
	return models.CreateAuditRequest{
		Name:         r.Name,
		Organization: r.Organization,
		Description:  r.Description,
	}
}

// ResponseChangeRequest is the body of PUT /api/audits/{auditID}/responses.
// Value range and catalog membership are checked by the service.
type ResponseChangeRequest struct {
	Category   string `json:"category"`
	QuestionID string `json:"questionId"`
	Value      int    `json:"value"`
}

func (r *ResponseChangeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Category = strings.TrimSpace(r.Category)
	r.QuestionID = strings.TrimSpace(r.QuestionID)
	if r.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	if r.QuestionID == "" {
		return dErrors.New(dErrors.CodeValidation, "questionId is required")
	}
	return nil
}

// UpdateFieldsRequest is the body of PATCH /api/audits/{auditID}. It carries
// the whole editable state, not a diff.
type UpdateFieldsRequest struct {
	Name                 string `json:"name"`
	Organization         string `json:"organization"`
	Description          string `json:"description"`
	Status               string `json:"status"`
	EthicalFramework     string `json:"ethicalFramework"`
	RisksAndChallenges   string `json:"risksAndChallenges"`
	MitigationStrategies string `json:"mitigationStrategies"`
	ContinuousMonitoring string `json:"continuousMonitoring"`
}

func (r *UpdateFieldsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Status = strings.TrimSpace(r.Status)
	if r.Status != "" && !models.AuditStatus(r.Status).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid status: "+r.Status)
	}
	return nil
}

func (r *UpdateFieldsRequest) toModel() models.AuditFields {
	return models.AuditFields{
		Name:                 r.Name,
		Organization:         r.Organization,
		Description:          r.Description,
		Status:               models.AuditStatus(r.Status),
		EthicalFramework:     r.EthicalFramework,
		RisksAndChallenges:   r.RisksAndChallenges,
		MitigationStrategies: r.MitigationStrategies,
		ContinuousMonitoring: r.ContinuousMonitoring,
	}
}

// InterviewRequest is the body of POST /api/audits/{auditID}/interviews.
type InterviewRequest struct {
	StaffName     string     `json:"staffName"`
	Position      string     `json:"position"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	Notes         string     `json:"notes"`
}

func (r *InterviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.StaffName = strings.TrimSpace(r.StaffName)
	if r.StaffName == "" {
		return dErrors.New(dErrors.CodeValidation, "staffName is required")
	}
	if len(r.Notes) > 10000 {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 10000 characters")
	}
	return nil
}

func (r *InterviewRequest) toModel() models.InterviewRequest {
	return models.InterviewRequest{
		StaffName:     r.StaffName,
		Position:      r.Position,
		InterviewDate: r.InterviewDate,
		Notes:         r.Notes,
	}
}

// RACIRequest is the body of PUT /api/audits/{auditID}/raci.
type RACIRequest struct {
	Role           string `json:"role"`
	Responsibility string `json:"responsibility"`
	AssignmentType string `json:"assignmentType"`
}

func (r *RACIRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if _, ok := models.ParseAssignmentType(r.AssignmentType); !ok {
		return dErrors.New(dErrors.CodeValidation, "assignmentType must be one of R, A, C, I or empty")
	}
	return nil
}

func (r *RACIRequest) toModel() models.RACIRequest {
	return models.RACIRequest{
		Role:           r.Role,
		Responsibility: r.Responsibility,
		AssignmentType: r.AssignmentType,
	}
}
