// Package services holds the lifecycle managers: each service owns one
// in-memory collection loaded at startup, serializes mutations with a
// mutex, and writes the whole collection through the persistence gateway
// on every change.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"finor/internal/core"
	applog "finor/internal/log"
	"finor/internal/storage"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrNotConfirmed = errors.New("destructive action not confirmed")
)

// TransactionService manages the client payment ledger.
type TransactionService struct {
	mu    sync.Mutex
	store storage.Store

	transactions []core.Transaction
	selected     map[string]bool

	// last filter input seen; a change clears the selection so a bulk
	// delete can never act on rows no longer in view
	lastSearch string
	lastFilter core.StatusFilter

	newID func() string
	now   func() time.Time
}

func NewTransactionService(ctx context.Context, store storage.Store) *TransactionService {
	return &TransactionService{
		store:        store,
		transactions: store.Transactions(ctx),
		selected:     make(map[string]bool),
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Save validates, derives status, and upserts by id: an existing record is
// replaced in place, a new one is prepended. The whole collection is
// written through on success.
func (s *TransactionService) Save(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	isNew := t.ID == ""
	if isNew {
		t.ID = s.newID()
	}
	t.Status = core.DeriveStatus(t.TotalValue, t.PaidValue)

	replaced := false
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		s.transactions = append([]core.Transaction{t}, s.transactions...)
	}

	if err := s.store.SaveTransactions(ctx, s.transactions); err != nil {
		return core.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}

	op := applog.OpUpdate
	if isNew {
		op = applog.OpCreate
	}
	slog.InfoContext(ctx, "Transaction saved",
		applog.NewFields().
			WithComponent(applog.ComponentTransaction).
			WithOperation(op).
			WithRecord(t.ID, t.ClientName, t.TotalValue.Cents).
			ToSlice()...)
	return t, nil
}

// Delete removes one record by id. The confirmed flag is the destructive
// action guard: without it no state changes.
func (s *TransactionService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	delete(s.selected, id)

	if err := s.store.SaveTransactions(ctx, s.transactions); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentTransaction).
		WithOperation(applog.OpDelete)
	fields[applog.FieldRecordID] = id
	slog.InfoContext(ctx, "Transaction deleted", fields.ToSlice()...)
	return nil
}

// BulkDelete removes every id in one pass and clears the selection set
// afterward. Unknown ids are ignored. Returns the number removed.
func (s *TransactionService) BulkDelete(ctx context.Context, ids []string, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.transactions[:0]
	removed := 0
	for _, t := range s.transactions {
		if drop[t.ID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.transactions = kept
	s.selected = make(map[string]bool)

	if removed == 0 {
		return 0, nil
	}

	if err := s.store.SaveTransactions(ctx, s.transactions); err != nil {
		return 0, fmt.Errorf("persist transactions: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentTransaction).
		WithOperation(applog.OpDelete)
	fields[applog.FieldCount] = removed
	slog.InfoContext(ctx, "Transactions bulk deleted", fields.ToSlice()...)
	return removed, nil
}

// ToggleSelect flips one record's membership in the selection set.
func (s *TransactionService) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

// SelectAll selects every record currently matching the given filter.
func (s *TransactionService) SelectAll(search string, filter core.StatusFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range core.FilterTransactions(s.transactions, search, filter, core.SortAsc) {
		s.selected[t.ID] = true
	}
}

// ClearSelection empties the selection set.
func (s *TransactionService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
}

// Selected returns the current selection as an id list.
func (s *TransactionService) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

// Filtered returns the transactions matching the search term and status
// filter in the requested event-date order. Changing either input clears
// the selection set.
func (s *TransactionService) Filtered(search string, filter core.StatusFilter, order core.SortOrder) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if search != s.lastSearch || filter != s.lastFilter {
		s.selected = make(map[string]bool)
		s.lastSearch = search
		s.lastFilter = filter
	}

	return core.FilterTransactions(s.transactions, search, filter, order)
}

// All returns a copy of the full ledger in stored order.
func (s *TransactionService) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Get returns one record by id.
func (s *TransactionService) Get(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

// Stats folds the ledger into the dashboard summary.
func (s *TransactionService) Stats() core.SummaryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.transactions)
}

// Debtors lists records with an outstanding balance, oldest event first.
func (s *TransactionService) Debtors() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Debtors(s.transactions)
}

// Reload replaces in-memory state from storage. Called after a restore.
func (s *TransactionService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = s.store.Transactions(ctx)
	s.selected = make(map[string]bool)
}
