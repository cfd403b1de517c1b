package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ethicsaudit/internal/assessment/metrics"
	"ethicsaudit/internal/assessment/models"

	"github.com/google/uuid"
)

const (
	defaultSaveDebounce = time.Second
	defaultSaveTimeout  = 5 * time.Second
)

// ErrSaverClosed is returned by ScheduleSave after Flush has started.
var ErrSaverClosed = errors.New("saver closed")

// SaveFunc persists the latest editable fields of one audit.
type SaveFunc func(ctx context.Context, auditID uuid.UUID, fields models.AuditFields) error

// pendingSave is the scheduled-task state of one audit. gen identifies the
// live timer; a timer with any other generation has been replaced and does
// nothing when it fires. Generations are unique across audits.
type pendingSave struct {
	timer    *time.Timer
	gen      uint64
	fields   models.AuditFields
	dirty    bool
	inFlight bool
	rerun    bool
}

// Saver collapses rapid field edits into debounced writes. Each audit owns at
// most one timer; a new edit stops the old timer and starts a new one. At
// most one save per audit runs at a time and a timer firing during a save
// makes that save loop once more with the latest fields. Intermediate states
// may be skipped; the last scheduled state is eventually written.
type Saver struct {
	save     SaveFunc
	debounce time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	pending map[uuid.UUID]*pendingSave
	seq     uint64
	closed  bool
	wg      sync.WaitGroup
}

type SaverOption func(*Saver)

// WithDebounce sets the quiescence interval before a save runs.
func WithDebounce(d time.Duration) SaverOption {
	return func(s *Saver) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithSaveTimeout bounds each individual write.
func WithSaveTimeout(d time.Duration) SaverOption {
	return func(s *Saver) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithSaverLogger(logger *slog.Logger) SaverOption {
	return func(s *Saver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithSaverMetrics(m *metrics.Metrics) SaverOption {
	return func(s *Saver) {
		s.metrics = m
	}
}

func NewSaver(save SaveFunc, opts ...SaverOption) *Saver {
	s := &Saver{
		save:     save,
		debounce: defaultSaveDebounce,
		timeout:  defaultSaveTimeout,
		logger:   slog.Default(),
		pending:  make(map[uuid.UUID]*pendingSave),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ScheduleSave records fields as the latest state of auditID and (re)starts
// its quiescence timer.
func (s *Saver) ScheduleSave(auditID uuid.UUID, fields models.AuditFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSaverClosed
	}

	p, ok := s.pending[auditID]
	if !ok {
		p = &pendingSave{}
		s.pending[auditID] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.fields = fields
	p.dirty = true
	s.seq++
	p.gen = s.seq
	gen := p.gen
	p.timer = time.AfterFunc(s.debounce, func() { s.fire(auditID, gen) })

	s.metrics.IncrementSaveScheduled()
	return nil
}

// Pending reports whether auditID has unsaved or in-flight state.
func (s *Saver) Pending(auditID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[auditID]
	return ok
}

func (s *Saver) fire(auditID uuid.UUID, gen uint64) {
	s.mu.Lock()
	p, ok := s.pending[auditID]
	if !ok || p.gen != gen || s.closed {
		s.mu.Unlock()
		return
	}
	p.timer = nil
	if p.inFlight {
		p.rerun = true
		s.mu.Unlock()
		return
	}
	p.inFlight = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.run(auditID)
}

// run writes the latest fields of auditID until no newer state arrived
// during the previous write. Caller must have set inFlight and added to wg.
func (s *Saver) run(auditID uuid.UUID) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		p := s.pending[auditID]
		fields := p.fields
		p.dirty = false
		p.rerun = false
		s.mu.Unlock()

		s.persist(auditID, fields)

		s.mu.Lock()
		if p.rerun {
			s.mu.Unlock()
			continue
		}
		p.inFlight = false
		if !p.dirty && p.timer == nil {
			delete(s.pending, auditID)
		}
		s.mu.Unlock()
		return
	}
}

func (s *Saver) persist(auditID uuid.UUID, fields models.AuditFields) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.save(ctx, auditID, fields); err != nil {
		s.metrics.IncrementSavePersisted("error")
		s.logger.Error("debounced audit save failed",
			"audit_id", auditID.String(),
			"error", err,
		)
		return
	}
	s.metrics.IncrementSavePersisted("ok")
}

// Flush stops accepting new edits, writes every pending state immediately and
// waits for all saves to finish or ctx to end.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	var start []uuid.UUID
	for auditID, p := range s.pending {
		if p.timer != nil {
			p.timer.Stop()
			p.timer = nil
		}
		if !p.dirty {
			continue
		}
		if p.inFlight {
			p.rerun = true
			continue
		}
		p.inFlight = true
		s.wg.Add(1)
		start = append(start, auditID)
	}
	s.mu.Unlock()

	for _, auditID := range start {
		go s.run(auditID)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
