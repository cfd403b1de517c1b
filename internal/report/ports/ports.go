// Package ports declares what report generation needs from the rest of the
// system, so the orchestrator does not depend on stores or SDKs directly.
package ports

import (
	"context"

	assessment "ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/report/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// AuditReader loads the sub-records of an audit. The assessment store
// satisfies it.
type AuditReader interface {
	FindAudit(ctx context.Context, auditID uuid.UUID) (*assessment.Audit, error)
	ListCategories(ctx context.Context, auditID uuid.UUID) ([]assessment.Category, error)
	ListResponses(ctx context.Context, auditID uuid.UUID) ([]assessment.Response, error)
	ListInterviews(ctx context.Context, auditID uuid.UUID) ([]assessment.Interview, error)
	ListRACI(ctx context.Context, auditID uuid.UUID) ([]assessment.RACIEntry, error)
}

// Generator opens a streaming completion for a prompt.
type Generator interface {
	Stream(ctx context.Context, prompt models.Prompt) (TokenStream, error)
}

// TokenStream yields text increments. Recv returns io.EOF after the last
// increment. Close releases the upstream connection and must always be
// called.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// EventPublisher announces generated reports to other systems.
type EventPublisher interface {
	PublishReportGenerated(ctx context.Context, report models.Report) error
}
