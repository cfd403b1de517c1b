package service

import (
	"context"
	"time"

	"ethicsaudit/internal/assessment/models"

	"github.com/google/uuid"
)

// Store persists audits and their sub-records. Upserts are keyed by the
// natural keys (audit_id, category_name), (audit_id, question_id) and
// (audit_id, role, responsibility). Missing rows surface as sentinel.ErrNotFound.
//
//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks
type Store interface {
	CreateAudit(ctx context.Context, audit *models.Audit) error
	FindAudit(ctx context.Context, auditID uuid.UUID) (*models.Audit, error)
	ListAudits(ctx context.Context, userID uuid.UUID) ([]models.Audit, error)
	UpdateAuditFields(ctx context.Context, auditID uuid.UUID, fields models.AuditFields, now time.Time) error
	UpdateOverallScore(ctx context.Context, auditID uuid.UUID, score int, now time.Time) error

	ListCategories(ctx context.Context, auditID uuid.UUID) ([]models.Category, error)
	UpsertCategory(ctx context.Context, category models.Category) error

	ListResponses(ctx context.Context, auditID uuid.UUID) ([]models.Response, error)
	FindResponse(ctx context.Context, auditID uuid.UUID, questionID string) (*models.Response, error)
	UpsertResponse(ctx context.Context, response models.Response) error

	ListInterviews(ctx context.Context, auditID uuid.UUID) ([]models.Interview, error)
	CreateInterview(ctx context.Context, interview *models.Interview) error

	ListRACI(ctx context.Context, auditID uuid.UUID) ([]models.RACIEntry, error)
	UpsertRACIEntry(ctx context.Context, entry *models.RACIEntry) error
}

// StoreTx provides a transactional boundary for multi-row writes. fn receives
// a context that carries the transaction and the store to use inside it; an
// error returned by fn rolls every write back.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
