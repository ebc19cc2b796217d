package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finor/internal/core"
	applog "finor/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps each collection as one row of a key-value table.
// The gateway contract stays full-document overwrite; only the backing
// medium changes.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, collection string) []byte {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE name = ?`, collection).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.WarnContext(ctx, "Failed to read collection row",
				applog.FieldComponent, applog.ComponentStorage,
				applog.FieldCollection, collection, applog.FieldError, err)
		}
		return nil
	}
	return []byte(payload)
}

func (s *SQLiteStore) set(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		collection, string(data))
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Transactions(ctx context.Context) []core.Transaction {
	data := s.get(ctx, CollectionTransactions)
	if data == nil {
		return []core.Transaction{}
	}
	var ts []core.Transaction
	if err := json.Unmarshal(data, &ts); err != nil {
		slog.WarnContext(ctx, "Corrupt transactions collection, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldCollection, CollectionTransactions, applog.FieldError, err)
		return []core.Transaction{}
	}
	return ts
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, ts []core.Transaction) error {
	return s.set(ctx, CollectionTransactions, ts)
}

func (s *SQLiteStore) Payables(ctx context.Context) []core.Payable {
	data := s.get(ctx, CollectionPayables)
	if data == nil {
		return []core.Payable{}
	}
	var ps []core.Payable
	if err := json.Unmarshal(data, &ps); err != nil {
		slog.WarnContext(ctx, "Corrupt payables collection, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldCollection, CollectionPayables, applog.FieldError, err)
		return []core.Payable{}
	}
	return ps
}

func (s *SQLiteStore) SavePayables(ctx context.Context, ps []core.Payable) error {
	return s.set(ctx, CollectionPayables, ps)
}

func (s *SQLiteStore) Settings(ctx context.Context) core.Settings {
	data := s.get(ctx, CollectionSettings)
	if data == nil {
		return core.DefaultSettings()
	}
	settings, _ := decodeSettings(ctx, data)
	return settings
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings core.Settings) error {
	return s.set(ctx, CollectionSettings, settings)
}

func (s *SQLiteStore) ExportAll(ctx context.Context) ([]byte, error) {
	return exportSnapshot(ctx, s, time.Now())
}

func (s *SQLiteStore) ImportAll(ctx context.Context, data []byte) error {
	return importSnapshot(ctx, s, data)
}
