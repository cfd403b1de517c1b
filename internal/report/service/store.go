package service

import (
	"context"

	"ethicsaudit/internal/report/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

// Store persists generated reports. Create writes one complete report in a
// single statement.
type Store interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, reportID uuid.UUID) (*models.Report, error)
	ListByAudit(ctx context.Context, auditID uuid.UUID) ([]models.Report, error)
}
