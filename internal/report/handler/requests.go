package handler

import (
	"strings"

	"github.com/google/uuid"

	"ethicsaudit/internal/report/models"
	dErrors "ethicsaudit/pkg/domain-errors"
)

const maxInstructionsLength = 10000

// GenerateReportRequest is the body of POST /api/reports.
type GenerateReportRequest struct {
	AuditID            string `json:"auditId"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	CustomInstructions string `json:"customInstructions"`

	auditID uuid.UUID
}

func (r *GenerateReportRequest) Validate() error {
	r.AuditID = strings.TrimSpace(r.AuditID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.CustomInstructions = strings.TrimSpace(r.CustomInstructions)

	if r.AuditID == "" {
		return dErrors.New(dErrors.CodeValidation, "Audit ID is required")
	}
	id, err := uuid.Parse(r.AuditID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "auditId must be a UUID")
	}
	if len(r.CustomInstructions) > maxInstructionsLength {
		return dErrors.New(dErrors.CodeValidation, "customInstructions is too long")
	}
	r.auditID = id
	return nil
}

func (r *GenerateReportRequest) toModel() models.GenerateRequest {
	return models.GenerateRequest{
		AuditID:            r.auditID,
		Title:              r.Title,
		Description:        r.Description,
		CustomInstructions: r.CustomInstructions,
	}
}
