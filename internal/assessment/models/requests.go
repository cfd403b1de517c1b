package models

import (
	"strings"
	"time"
)

// CreateAuditRequest opens a new audit.
type CreateAuditRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Description  string `json:"description"`
}

// Normalize trims user input.
func (r *CreateAuditRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Organization = strings.TrimSpace(r.Organization)
	r.Description = strings.TrimSpace(r.Description)
}

// ResponseChangeRequest answers or corrects one question.
type ResponseChangeRequest struct {
	Category   string `json:"category"`
	QuestionID string `json:"questionId"`
	Value      int    `json:"value"`
}

// InterviewRequest logs a stakeholder interview.
type InterviewRequest struct {
	StaffName     string     `json:"staffName"`
	Position      string     `json:"position"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	Notes         string     `json:"notes"`
}

// RACIRequest sets one cell of the RACI matrix.
type RACIRequest struct {
	Role           string `json:"role"`
	Responsibility string `json:"responsibility"`
	AssignmentType string `json:"assignmentType"`
}
