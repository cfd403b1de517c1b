package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusArchived  ReportStatus = "archived"
)

// InitialVersion is the version of every newly generated report. Regenerating
// creates a new row rather than a new version.
const InitialVersion = 1

// Report is a persisted, generated narrative. Reports are immutable.
type Report struct {
	ID                 uuid.UUID    `json:"id"`
	AuditID            uuid.UUID    `json:"auditId"`
	UserID             uuid.UUID    `json:"createdBy"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Content            string       `json:"content"`
	CustomInstructions string       `json:"customInstructions,omitempty"`
	Status             ReportStatus `json:"status"`
	Version            int          `json:"version"`
	CreatedAt          time.Time    `json:"createdAt"`
}

// GenerateRequest asks for a new report of one audit.
type GenerateRequest struct {
	AuditID            uuid.UUID
	Title              string
	Description        string
	CustomInstructions string
}

// Prompt is the pair of messages sent to the generative backend.
type Prompt struct {
	System string
	User   string
}
