package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/assessment/service"
	"ethicsaudit/pkg/platform/sentinel"

	"github.com/google/uuid"
)

type responseKey struct {
	auditID    uuid.UUID
	questionID string
}

type categoryKey struct {
	auditID uuid.UUID
	name    string
}

type raciKey struct {
	auditID        uuid.UUID
	role           string
	responsibility string
}

// InMemoryStore keeps audits in maps. It is the development and test backend
// and also serves as its own StoreTx: writes made inside RunInTx are journaled
// and undone when the unit of work fails. Units of work are not isolated from
// each other; callers serialize work on one audit with a Locker, and work on
// different audits proceeds in parallel.
type InMemoryStore struct {
	mu         sync.RWMutex
	audits     map[uuid.UUID]models.Audit
	categories map[categoryKey]models.Category
	responses  map[responseKey]models.Response
	interviews map[uuid.UUID][]models.Interview
	raci       map[raciKey]models.RACIEntry
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		audits:     make(map[uuid.UUID]models.Audit),
		categories: make(map[categoryKey]models.Category),
		responses:  make(map[responseKey]models.Response),
		interviews: make(map[uuid.UUID][]models.Interview),
		raci:       make(map[raciKey]models.RACIEntry),
	}
}

type journalKey struct{}

// journal records undo steps of the running unit of work.
type journal struct {
	undo []func()
}

func (s *InMemoryStore) record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

// RunInTx rolls back the writes of fn when it fails.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j), s); err != nil {
		s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *InMemoryStore) CreateAudit(ctx context.Context, audit *models.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.audits[audit.ID]; exists {
		return fmt.Errorf("audit %s: %w", audit.ID, sentinel.ErrConflict)
	}
	s.audits[audit.ID] = *audit
	s.record(ctx, func() { delete(s.audits, audit.ID) })
	return nil
}

func (s *InMemoryStore) FindAudit(_ context.Context, auditID uuid.UUID) (*models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	audit, ok := s.audits[auditID]
	if !ok {
		return nil, fmt.Errorf("audit %s: %w", auditID, sentinel.ErrNotFound)
	}
	return &audit, nil
}

func (s *InMemoryStore) ListAudits(_ context.Context, userID uuid.UUID) ([]models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Audit
	for _, a := range s.audits {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Audit) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) UpdateAuditFields(ctx context.Context, auditID uuid.UUID, fields models.AuditFields, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit, ok := s.audits[auditID]
	if !ok {
		return fmt.Errorf("audit %s: %w", auditID, sentinel.ErrNotFound)
	}
	prev := audit
	fields.Apply(&audit)
	audit.UpdatedAt = now
	s.audits[auditID] = audit
	s.record(ctx, func() { s.audits[auditID] = prev })
	return nil
}

func (s *InMemoryStore) UpdateOverallScore(ctx context.Context, auditID uuid.UUID, score int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit, ok := s.audits[auditID]
	if !ok {
		return fmt.Errorf("audit %s: %w", auditID, sentinel.ErrNotFound)
	}
	prev := audit
	audit.OverallScore = score
	audit.UpdatedAt = now
	s.audits[auditID] = audit
	s.record(ctx, func() { s.audits[auditID] = prev })
	return nil
}

func (s *InMemoryStore) ListCategories(_ context.Context, auditID uuid.UUID) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Category
	for k, c := range s.categories {
		if k.auditID == auditID {
			out = append(out, c)
		}
	}
	service.SortCategories(out)
	return out, nil
}

func (s *InMemoryStore) UpsertCategory(ctx context.Context, category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := categoryKey{auditID: category.AuditID, name: category.Name}
	prev, existed := s.categories[key]
	s.categories[key] = category
	s.record(ctx, func() {
		if existed {
			s.categories[key] = prev
		} else {
			delete(s.categories, key)
		}
	})
	return nil
}

func (s *InMemoryStore) ListResponses(_ context.Context, auditID uuid.UUID) ([]models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Response
	for k, r := range s.responses {
		if k.auditID == auditID {
			out = append(out, r)
		}
	}
	service.SortResponses(out)
	return out, nil
}

func (s *InMemoryStore) FindResponse(_ context.Context, auditID uuid.UUID, questionID string) (*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.responses[responseKey{auditID: auditID, questionID: questionID}]
	if !ok {
		return nil, fmt.Errorf("response %s: %w", questionID, sentinel.ErrNotFound)
	}
	return &r, nil
}

func (s *InMemoryStore) UpsertResponse(ctx context.Context, response models.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := responseKey{auditID: response.AuditID, questionID: response.QuestionID}
	prev, existed := s.responses[key]
	if existed && prev.Category != response.Category {
		return fmt.Errorf("response %s changes category: %w", response.QuestionID, sentinel.ErrConflict)
	}
	s.responses[key] = response
	s.record(ctx, func() {
		if existed {
			s.responses[key] = prev
		} else {
			delete(s.responses, key)
		}
	})
	return nil
}

func (s *InMemoryStore) ListInterviews(_ context.Context, auditID uuid.UUID) ([]models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.interviews[auditID]), nil
}

func (s *InMemoryStore) CreateInterview(ctx context.Context, interview *models.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews[interview.AuditID] = append(s.interviews[interview.AuditID], *interview)
	s.record(ctx, func() {
		list := s.interviews[interview.AuditID]
		s.interviews[interview.AuditID] = list[:len(list)-1]
	})
	return nil
}

func (s *InMemoryStore) ListRACI(_ context.Context, auditID uuid.UUID) ([]models.RACIEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RACIEntry
	for k, e := range s.raci {
		if k.auditID == auditID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.RACIEntry) int {
		if c := strings.Compare(a.Role, b.Role); c != 0 {
			return c
		}
		return strings.Compare(a.Responsibility, b.Responsibility)
	})
	return out, nil
}

// UpsertRACIEntry keeps the id of an existing cell and overwrites its assignment.
func (s *InMemoryStore) UpsertRACIEntry(ctx context.Context, entry *models.RACIEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := raciKey{auditID: entry.AuditID, role: entry.Role, responsibility: entry.Responsibility}
	prev, existed := s.raci[key]
	if existed {
		entry.ID = prev.ID
	}
	s.raci[key] = *entry
	s.record(ctx, func() {
		if existed {
			s.raci[key] = prev
		} else {
			delete(s.raci, key)
		}
	})
	return nil
}
