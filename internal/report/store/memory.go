package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// InMemoryStore keeps reports in a map.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]models.Report
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reports: make(map[uuid.UUID]models.Report)}
}

func (s *InMemoryStore) Create(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; exists {
		return fmt.Errorf("report %s: %w", report.ID, sentinel.ErrConflict)
	}
	s.reports[report.ID] = *report
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, reportID uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, fmt.Errorf("report %s: %w", reportID, sentinel.ErrNotFound)
	}
	return &r, nil
}

// ListByAudit returns the reports of an audit, newest first.
func (s *InMemoryStore) ListByAudit(_ context.Context, auditID uuid.UUID) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Report
	for _, r := range s.reports {
		if r.AuditID == auditID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.Report) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored reports.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
