package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finor/internal/core"
	applog "finor/internal/log"
)

// FileStore keeps one JSON document per collection under a data
// directory. It is the default backend and mirrors the original
// key-value layout: the collection key is the file name.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

// read returns the raw document for a collection, or nil when the file
// does not exist. I/O errors other than absence are logged and treated
// as absence; the caller falls back to the default value.
func (f *FileStore) read(ctx context.Context, collection string) []byte {
	data, err := os.ReadFile(f.path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Failed to read collection file",
				applog.FieldComponent, applog.ComponentStorage,
				applog.FieldCollection, collection, applog.FieldError, err)
		}
		return nil
	}
	return data
}

func (f *FileStore) write(collection string, v any) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	if err := os.WriteFile(f.path(collection), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

func (f *FileStore) Transactions(ctx context.Context) []core.Transaction {
	data := f.read(ctx, CollectionTransactions)
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

func (f *FileStore) SaveTransactions(ctx context.Context, ts []core.Transaction) error {
	return f.write(CollectionTransactions, ts)
}

func (f *FileStore) Payables(ctx context.Context) []core.Payable {
	data := f.read(ctx, CollectionPayables)
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

func (f *FileStore) SavePayables(ctx context.Context, ps []core.Payable) error {
	return f.write(CollectionPayables, ps)
}

func (f *FileStore) Settings(ctx context.Context) core.Settings {
	data := f.read(ctx, CollectionSettings)
	if data == nil {
		return core.DefaultSettings()
	}
	settings, _ := decodeSettings(ctx, data)
	return settings
}

func (f *FileStore) SaveSettings(ctx context.Context, s core.Settings) error {
	return f.write(CollectionSettings, s)
}

func (f *FileStore) ExportAll(ctx context.Context) ([]byte, error) {
	return exportSnapshot(ctx, f, time.Now())
}

func (f *FileStore) ImportAll(ctx context.Context, data []byte) error {
	return importSnapshot(ctx, f, data)
}

func (f *FileStore) Close() error {
	return nil
}
