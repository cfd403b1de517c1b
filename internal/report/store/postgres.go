package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ethicsaudit/internal/platform/postgres"
	"ethicsaudit/internal/report/models"
	"ethicsaudit/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore persists reports in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reportColumns = `id, audit_id, created_by, title, COALESCE(description, ''), content,
	COALESCE(custom_instructions, ''), status, version, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var status string
	if err := row.Scan(&r.ID, &r.AuditID, &r.UserID, &r.Title, &r.Description, &r.Content,
		&r.CustomInstructions, &status, &r.Version, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Status = models.ReportStatus(status)
	return &r, nil
}

func (s *PostgresStore) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, audit_id, created_by, title, description, content,
			custom_instructions, status, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		report.ID, report.AuditID, report.UserID, report.Title, report.Description, report.Content,
		report.CustomInstructions, string(report.Status), report.Version, report.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("create report: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	report, err := scanReport(s.db.QueryRowContext(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find report: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

func (s *PostgresStore) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE audit_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}
