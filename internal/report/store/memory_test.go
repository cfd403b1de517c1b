package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	auditID := uuid.New()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	older := &models.Report{ID: uuid.New(), AuditID: auditID, Title: "first", CreatedAt: base}
	newer := &models.Report{ID: uuid.New(), AuditID: auditID, Title: "second", CreatedAt: base.Add(time.Minute)}
	other := &models.Report{ID: uuid.New(), AuditID: uuid.New(), Title: "elsewhere", CreatedAt: base}
	for _, r := range []*models.Report{older, newer, other} {
		require.NoError(t, s.Create(ctx, r))
	}

	t.Run("duplicate id conflicts", func(t *testing.T) {
		assert.ErrorIs(t, s.Create(ctx, older), sentinel.ErrConflict)
		assert.Equal(t, 3, s.Count())
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := s.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Title)

		_, err = s.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list is scoped and newest first", func(t *testing.T) {
		got, err := s.ListByAudit(ctx, auditID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	})

	t.Run("returned copies do not alias storage", func(t *testing.T) {
		got, err := s.FindByID(ctx, older.ID)
		require.NoError(t, err)
		got.Title = "mutated"

		again, err := s.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", again.Title)
	})
}
