package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/platform/postgres"
	"ethicsaudit/pkg/platform/sentinel"
	txcontext "ethicsaudit/pkg/platform/tx"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore persists audits and their sub-records in PostgreSQL.
// This store is pure I/O; score computation belongs in the service. Inside a
// unit of work every query runs on the transaction carried by the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) txcontext.Execer {
	return txcontext.Pick(ctx, s.db)
}

const auditColumns = `id, user_id, name, organization, COALESCE(description, ''), status,
	COALESCE(overall_score, 0), COALESCE(ethical_framework, ''), COALESCE(risks_and_challenges, ''),
	COALESCE(mitigation_strategies, ''), COALESCE(continuous_monitoring, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (*models.Audit, error) {
	var a models.Audit
	var status string
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Organization, &a.Description, &status,
		&a.OverallScore, &a.EthicalFramework, &a.RisksAndChallenges, &a.MitigationStrategies,
		&a.ContinuousMonitoring, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = models.AuditStatus(status)
	return &a, nil
}

func (s *PostgresStore) CreateAudit(ctx context.Context, audit *models.Audit) error {
	query := `
		INSERT INTO audits (id, user_id, name, organization, description, status, overall_score,
			ethical_framework, risks_and_challenges, mitigation_strategies, continuous_monitoring,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		audit.ID, audit.UserID, audit.Name, audit.Organization, audit.Description,
		string(audit.Status), audit.OverallScore, audit.EthicalFramework, audit.RisksAndChallenges,
		audit.MitigationStrategies, audit.ContinuousMonitoring, audit.CreatedAt, audit.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("create audit: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create audit: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindAudit(ctx context.Context, auditID uuid.UUID) (*models.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE id = $1`
	audit, err := scanAudit(s.execer(ctx).QueryRowContext(ctx, query, auditID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find audit: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find audit: %w", err)
	}
	return audit, nil
}

func (s *PostgresStore) ListAudits(ctx context.Context, userID uuid.UUID) ([]models.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.execer(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var out []models.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audits: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateAuditFields(ctx context.Context, auditID uuid.UUID, fields models.AuditFields, now time.Time) error {
	query := `
		UPDATE audits SET
			name = $2,
			organization = $3,
			description = $4,
			status = $5,
			ethical_framework = $6,
			risks_and_challenges = $7,
			mitigation_strategies = $8,
			continuous_monitoring = $9,
			updated_at = $10
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query, auditID,
		fields.Name, fields.Organization, fields.Description, string(fields.Status),
		fields.EthicalFramework, fields.RisksAndChallenges, fields.MitigationStrategies,
		fields.ContinuousMonitoring, now,
	)
	if err != nil {
		return fmt.Errorf("update audit fields: %w", err)
	}
	return requireRow(res, "update audit fields")
}

func (s *PostgresStore) UpdateOverallScore(ctx context.Context, auditID uuid.UUID, score int, now time.Time) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE audits SET overall_score = $2, updated_at = $3 WHERE id = $1`,
		auditID, score, now,
	)
	if err != nil {
		return fmt.Errorf("update overall score: %w", err)
	}
	return requireRow(res, "update overall score")
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}

// ListCategories returns category rows in catalog order.
func (s *PostgresStore) ListCategories(ctx context.Context, auditID uuid.UUID) ([]models.Category, error) {
	query := `
		SELECT audit_id, category_name, COALESCE(score, 0), updated_at
		FROM ethical_assessment_categories
		WHERE audit_id = $1
		ORDER BY COALESCE(array_position($2::text[], category_name), 2147483647), category_name
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, auditID, pq.Array(models.CategoryNames()))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.AuditID, &c.Name, &c.Score, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpsertCategory(ctx context.Context, category models.Category) error {
	query := `
		INSERT INTO ethical_assessment_categories (audit_id, category_name, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (audit_id, category_name) DO UPDATE SET
			score = EXCLUDED.score,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.execer(ctx).ExecContext(ctx, query, category.AuditID, category.Name, category.Score, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

const responseColumns = `audit_id, question_id, category_name, response, updated_at`

func (s *PostgresStore) ListResponses(ctx context.Context, auditID uuid.UUID) ([]models.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM ethical_assessment_responses WHERE audit_id = $1 ORDER BY question_id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []models.Response
	for rows.Next() {
		var r models.Response
		if err := rows.Scan(&r.AuditID, &r.QuestionID, &r.Category, &r.Value, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindResponse(ctx context.Context, auditID uuid.UUID, questionID string) (*models.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM ethical_assessment_responses WHERE audit_id = $1 AND question_id = $2`
	var r models.Response
	err := s.execer(ctx).QueryRowContext(ctx, query, auditID, questionID).
		Scan(&r.AuditID, &r.QuestionID, &r.Category, &r.Value, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find response: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find response: %w", err)
	}
	return &r, nil
}

// UpsertResponse overwrites the value of an answered question. A conflicting
// row recorded under another category is left untouched and reported as
// sentinel.ErrConflict.
func (s *PostgresStore) UpsertResponse(ctx context.Context, response models.Response) error {
	query := `
		INSERT INTO ethical_assessment_responses (audit_id, question_id, category_name, response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (audit_id, question_id) DO UPDATE SET
			response = EXCLUDED.response,
			updated_at = EXCLUDED.updated_at
		WHERE ethical_assessment_responses.category_name = EXCLUDED.category_name
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		response.AuditID, response.QuestionID, response.Category, response.Value, response.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("upsert response rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("upsert response changes category: %w", sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) ListInterviews(ctx context.Context, auditID uuid.UUID) ([]models.Interview, error) {
	query := `
		SELECT id, audit_id, staff_name, COALESCE(position, ''), interview_date, COALESCE(notes, ''), created_at
		FROM staff_interviews
		WHERE audit_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var out []models.Interview
	for rows.Next() {
		var i models.Interview
		var date sql.NullTime
		if err := rows.Scan(&i.ID, &i.AuditID, &i.StaffName, &i.Position, &date, &i.Notes, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		if date.Valid {
			d := date.Time
			i.InterviewDate = &d
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interviews: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateInterview(ctx context.Context, interview *models.Interview) error {
	query := `
		INSERT INTO staff_interviews (id, audit_id, staff_name, position, interview_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		interview.ID, interview.AuditID, interview.StaffName, interview.Position,
		interview.InterviewDate, interview.Notes, interview.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create interview: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRACI(ctx context.Context, auditID uuid.UUID) ([]models.RACIEntry, error) {
	query := `
		SELECT id, audit_id, role, responsibility, COALESCE(assignment_type, '')
		FROM raci_matrix
		WHERE audit_id = $1
		ORDER BY role, responsibility
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list raci: %w", err)
	}
	defer rows.Close()

	var out []models.RACIEntry
	for rows.Next() {
		var e models.RACIEntry
		var assignment string
		if err := rows.Scan(&e.ID, &e.AuditID, &e.Role, &e.Responsibility, &assignment); err != nil {
			return nil, fmt.Errorf("scan raci entry: %w", err)
		}
		e.AssignmentType = models.AssignmentType(assignment)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate raci: %w", err)
	}
	return out, nil
}

// UpsertRACIEntry keeps the id of an existing cell; entry.ID is updated to the
// stored id.
func (s *PostgresStore) UpsertRACIEntry(ctx context.Context, entry *models.RACIEntry) error {
	query := `
		INSERT INTO raci_matrix (id, audit_id, role, responsibility, assignment_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (audit_id, role, responsibility) DO UPDATE SET
			assignment_type = EXCLUDED.assignment_type
		RETURNING id
	`
	err := s.execer(ctx).QueryRowContext(ctx, query,
		entry.ID, entry.AuditID, entry.Role, entry.Responsibility, string(entry.AssignmentType),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("upsert raci entry: %w", err)
	}
	return nil
}
