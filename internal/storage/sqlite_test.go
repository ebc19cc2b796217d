package storage

import (
	"context"
	"path/filepath"
	"testing"

	"finor/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "finor.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_MissingCollections(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if ts := s.Transactions(ctx); len(ts) != 0 {
		t.Errorf("Transactions() on empty store = %d records, want 0", len(ts))
	}
	if ps := s.Payables(ctx); len(ps) != 0 {
		t.Errorf("Payables() on empty store = %d records, want 0", len(ps))
	}

	settings := s.Settings(ctx)
	defaults := core.DefaultSettings()
	if settings.DiscountPercent != defaults.DiscountPercent {
		t.Errorf("Settings() discount = %v, want default %v",
			settings.DiscountPercent, defaults.DiscountPercent)
	}
	if len(settings.Categories) != len(defaults.Categories) {
		t.Errorf("Settings() categories = %d, want default %d",
			len(settings.Categories), len(defaults.Categories))
	}
}

func TestSQLiteStore_CorruptPayloadRecovers(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		CollectionTransactions, "{not json")
	if err != nil {
		t.Fatal(err)
	}

	if ts := s.Transactions(ctx); len(ts) != 0 {
		t.Errorf("Transactions() on corrupt payload = %d records, want 0", len(ts))
	}
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	want := []core.Transaction{
		{ID: "t1", ClientName: "Maria", TotalValue: core.Money{Cents: 9500},
			PaidValue: core.Money{Cents: 9500}, EventDate: core.NewDate(2024, 5, 1),
			Status: core.StatusPaid},
	}
	if err := s.SaveTransactions(ctx, want); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	if err := s.SavePayables(ctx, []core.Payable{
		{ID: "p1", Description: "Rent", Amount: core.Money{Cents: 20000},
			DueDate: core.NewDate(2024, 1, 31), Periodicity: core.Monthly,
			RecurrenceIndex: 1, Status: core.StatusPending},
	}); err != nil {
		t.Fatalf("SavePayables() error = %v", err)
	}

	got := s.Transactions(ctx)
	if len(got) != 1 || got[0].ID != "t1" || got[0].TotalValue.Cents != 9500 {
		t.Errorf("Transactions() = %+v, want %+v", got, want)
	}
	ps := s.Payables(ctx)
	if len(ps) != 1 || !ps[0].DueDate.Equal(core.NewDate(2024, 1, 31)) {
		t.Errorf("Payables() = %+v", ps)
	}
}

func TestSQLiteStore_SettingsMergeOnLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	// A stored document from an older schema that only knows about the
	// discount field.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		CollectionSettings, `{"discountPercent": 12}`)
	if err != nil {
		t.Fatal(err)
	}

	settings := s.Settings(ctx)
	if settings.DiscountPercent != 12 {
		t.Errorf("stored discount not honored: got %v, want 12", settings.DiscountPercent)
	}
	defaults := core.DefaultSettings()
	if len(settings.PixKeys) != len(defaults.PixKeys) {
		t.Errorf("absent pixKeys not defaulted: got %d, want %d",
			len(settings.PixKeys), len(defaults.PixKeys))
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "finor.db")

	first, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := first.SaveTransactions(ctx, []core.Transaction{
		{ID: "t1", ClientName: "Maria", TotalValue: core.Money{Cents: 9500},
			EventDate: core.NewDate(2024, 5, 1), Status: core.StatusPending},
	}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	// Migrations are idempotent on an already-migrated database.
	second, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer second.Close()

	if ts := second.Transactions(ctx); len(ts) != 1 || ts[0].ID != "t1" {
		t.Errorf("Transactions() after reopen = %+v", ts)
	}
}

func TestSQLiteStore_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestSQLiteStore(t)

	if err := src.SaveTransactions(ctx, []core.Transaction{
		{ID: "t1", ClientName: "Maria", TotalValue: core.Money{Cents: 9500},
			PaidValue: core.Money{Cents: 5000}, EventDate: core.NewDate(2024, 5, 1),
			Status: core.StatusPending},
	}); err != nil {
		t.Fatal(err)
	}
	settings := core.DefaultSettings()
	settings.DiscountPercent = 7
	if err := src.SaveSettings(ctx, settings); err != nil {
		t.Fatal(err)
	}

	snapshot, err := src.ExportAll(ctx)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	dst := newTestSQLiteStore(t)
	if err := dst.ImportAll(ctx, snapshot); err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	ts := dst.Transactions(ctx)
	if len(ts) != 1 || ts[0].ID != "t1" || ts[0].PaidValue.Cents != 5000 {
		t.Errorf("transactions after import = %+v", ts)
	}
	if got := dst.Settings(ctx); got.DiscountPercent != 7 {
		t.Errorf("settings after import: discount = %v, want 7", got.DiscountPercent)
	}
}

func TestSQLiteStore_ImportRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if err := s.ImportAll(ctx, []byte("this is not a snapshot")); err == nil {
		t.Fatal("ImportAll() accepted unparsable snapshot")
	}
	if ts := s.Transactions(ctx); len(ts) != 0 {
		t.Errorf("failed import must not write state, got %d records", len(ts))
	}
}
