// Package storage is the persistence gateway: three named record
// collections persisted as whole documents, with safe-parse-or-default
// reads and full-overwrite writes.
//
// Two backends implement the same contract: a JSON file per collection
// (the default) and a single-table SQLite store.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"finor/internal/core"
	applog "finor/internal/log"
)

// Collection keys. The versioned names are part of the stored data's
// identity and survive backend changes.
const (
	CollectionTransactions = "finor_transactions_v2"
	CollectionPayables     = "finor_payables_v1"
	CollectionSettings     = "finor_settings_v2"
)

const snapshotVersion = "1.1"

// Store persists the three collections. Reads are tolerant: missing or
// corrupt data comes back as the empty collection (or default settings)
// with a log line, never as an error.
type Store interface {
	Transactions(ctx context.Context) []core.Transaction
	SaveTransactions(ctx context.Context, ts []core.Transaction) error

	Payables(ctx context.Context) []core.Payable
	SavePayables(ctx context.Context, ps []core.Payable) error

	Settings(ctx context.Context) core.Settings
	SaveSettings(ctx context.Context, s core.Settings) error

	// ExportAll serializes all three collections into one versioned,
	// timestamped snapshot.
	ExportAll(ctx context.Context) ([]byte, error)

	// ImportAll replaces each collection present and well-formed in the
	// snapshot. Malformed sub-fields are skipped; only unparsable
	// snapshot syntax is an error. Callers reload in-memory state after
	// a successful import.
	ImportAll(ctx context.Context, data []byte) error

	Close() error
}

// Snapshot is the backup wire format.
type Snapshot struct {
	Transactions []core.Transaction `json:"transactions"`
	Payables     []core.Payable     `json:"payables"`
	Settings     core.Settings      `json:"settings"`
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
}

func exportSnapshot(ctx context.Context, s Store, now time.Time) ([]byte, error) {
	snap := Snapshot{
		Transactions: s.Transactions(ctx),
		Payables:     s.Payables(ctx),
		Settings:     s.Settings(ctx),
		Version:      snapshotVersion,
		ExportedAt:   now.UTC(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

type rawSnapshot struct {
	Transactions json.RawMessage `json:"transactions"`
	Payables     json.RawMessage `json:"payables"`
	Settings     json.RawMessage `json:"settings"`
	Version      string          `json:"version"`
}

func importSnapshot(ctx context.Context, s Store, data []byte) error {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	if len(raw.Transactions) > 0 {
		var ts []core.Transaction
		if err := json.Unmarshal(raw.Transactions, &ts); err != nil {
			slog.WarnContext(ctx, "Skipping malformed transactions in snapshot",
				"version", raw.Version, applog.FieldError, err)
		} else if err := s.SaveTransactions(ctx, ts); err != nil {
			return fmt.Errorf("restore transactions: %w", err)
		}
	}

	if len(raw.Payables) > 0 {
		var ps []core.Payable
		if err := json.Unmarshal(raw.Payables, &ps); err != nil {
			slog.WarnContext(ctx, "Skipping malformed payables in snapshot",
				"version", raw.Version, applog.FieldError, err)
		} else if err := s.SavePayables(ctx, ps); err != nil {
			return fmt.Errorf("restore payables: %w", err)
		}
	}

	if len(raw.Settings) > 0 {
		settings, ok := decodeSettings(ctx, raw.Settings)
		if !ok {
			slog.WarnContext(ctx, "Skipping malformed settings in snapshot",
				"version", raw.Version)
		} else if err := s.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
	}

	return nil
}

// decodeSettings unmarshals over the defaults so that fields absent from
// stored data keep their documented default values. Stored values always
// win when present.
func decodeSettings(ctx context.Context, data []byte) (core.Settings, bool) {
	settings := core.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.WarnContext(ctx, "Malformed settings payload", applog.FieldError, err)
		return core.DefaultSettings(), false
	}
	return settings, true
}

// Open selects a backend by name: "file" (default) or "sqlite".
func Open(backend, dataDir, dbPath string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(dataDir), nil
	case "sqlite":
		return NewSQLiteStore(dbPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
