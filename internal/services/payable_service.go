package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"finor/internal/core"
	applog "finor/internal/log"
	"finor/internal/storage"
)

// PayableService manages the recurring bill collection.
type PayableService struct {
	mu    sync.Mutex
	store storage.Store

	payables []core.Payable

	newID func() string
	now   func() time.Time
}

func NewPayableService(ctx context.Context, store storage.Store) *PayableService {
	return &PayableService{
		store:    store,
		payables: store.Payables(ctx),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// CreateBatch validates the template, expands it into installments, and
// appends them all in one atomic write. Returns the generated batch.
func (s *PayableService) CreateBatch(ctx context.Context, t core.RecurrenceTemplate) ([]core.Payable, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := core.Expand(t, core.Today(s.now()), s.newID)
	s.payables = append(s.payables, batch...)

	if err := s.store.SavePayables(ctx, s.payables); err != nil {
		return nil, fmt.Errorf("persist payables: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentPayable).
		WithOperation(applog.OpCreate)
	fields[applog.FieldCount] = len(batch)
	slog.InfoContext(ctx, "Payable batch created", fields.ToSlice()...)
	return batch, nil
}

// ToggleStatus flips one installment between pending and paid. Going to
// paid stamps today as the paid date; reverting clears it. Recurrence
// bookkeeping fields are untouched.
func (s *PayableService) ToggleStatus(ctx context.Context, id string) (core.Payable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.payables {
		if s.payables[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Payable{}, ErrNotFound
	}

	p := &s.payables[idx]
	if p.Status == core.StatusPaid {
		p.Status = core.StatusPending
		p.PaidDate = core.Date{}
	} else {
		p.Status = core.StatusPaid
		p.PaidDate = core.Today(s.now())
	}

	if err := s.store.SavePayables(ctx, s.payables); err != nil {
		return core.Payable{}, fmt.Errorf("persist payables: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentPayable).
		WithOperation(applog.OpUpdate)
	fields[applog.FieldRecordID] = id
	slog.InfoContext(ctx, "Payable status toggled", fields.ToSlice()...)
	return *p, nil
}

// Delete removes a single installment. Sibling installments of the same
// batch are not touched. The confirmed flag is the destructive guard.
func (s *PayableService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.payables {
		if s.payables[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	s.payables = append(s.payables[:idx], s.payables[idx+1:]...)

	if err := s.store.SavePayables(ctx, s.payables); err != nil {
		return fmt.Errorf("persist payables: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentPayable).
		WithOperation(applog.OpDelete)
	fields[applog.FieldRecordID] = id
	slog.InfoContext(ctx, "Payable deleted", fields.ToSlice()...)
	return nil
}

// List returns either the pending or the paid partition, due date ascending.
func (s *PayableService) List(showPaid bool) []core.Payable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.FilterPayables(s.payables, showPaid)
}

// All returns a copy of the full collection in stored order.
func (s *PayableService) All() []core.Payable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Payable, len(s.payables))
	copy(out, s.payables)
	return out
}

// Reload replaces in-memory state from storage. Called after a restore.
func (s *PayableService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payables = s.store.Payables(ctx)
}
