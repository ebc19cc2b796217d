package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"finor/internal/core"
	applog "finor/internal/log"
	"finor/internal/storage"
)

// SettingsService manages process-wide configuration: the discount
// percentage, the pix key distribution list, and the pricing categories.
// Storage merges stored values over the defaults on load, so a settings
// document from an older schema picks up new default fields.
type SettingsService struct {
	mu    sync.Mutex
	store storage.Store

	settings core.Settings

	newID func() string
}

func NewSettingsService(ctx context.Context, store storage.Store) *SettingsService {
	return &SettingsService{
		store:    store,
		settings: store.Settings(ctx),
		newID:    uuid.NewString,
	}
}

// Get returns the current settings snapshot.
func (s *SettingsService) Get() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update replaces the whole settings document.
func (s *SettingsService) Update(ctx context.Context, settings core.Settings) error {
	if settings.DiscountPercent < 0 {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}

	fields := applog.NewFields().
		WithComponent(applog.ComponentSettings).
		WithOperation(applog.OpUpdate)
	fields["discount_percent"] = settings.DiscountPercent
	slog.InfoContext(ctx, "Settings updated", fields.ToSlice()...)
	return nil
}

// SetDiscount updates only the spot-payment discount percentage.
func (s *SettingsService) SetDiscount(ctx context.Context, percent float64) error {
	if percent < 0 {
		return core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.DiscountPercent = percent
	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// UpsertPixKey adds a key (id assigned when absent) or replaces one in
// place by id, keeping list order.
func (s *SettingsService) UpsertPixKey(ctx context.Context, key core.PixKey) (core.PixKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key.ID == "" {
		key.ID = s.newID()
		s.settings.PixKeys = append(s.settings.PixKeys, key)
	} else {
		found := false
		for i := range s.settings.PixKeys {
			if s.settings.PixKeys[i].ID == key.ID {
				s.settings.PixKeys[i] = key
				found = true
				break
			}
		}
		if !found {
			return core.PixKey{}, ErrNotFound
		}
	}

	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return core.PixKey{}, fmt.Errorf("persist settings: %w", err)
	}
	return key, nil
}

// RemovePixKey deletes a key by id.
func (s *SettingsService) RemovePixKey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.settings.PixKeys {
		if s.settings.PixKeys[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.settings.PixKeys = append(s.settings.PixKeys[:idx], s.settings.PixKeys[idx+1:]...)

	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// UpsertCategory adds a pricing preset (id assigned when absent) or
// replaces one in place by id. Renames never cascade to transactions;
// they reference the category by name only.
func (s *SettingsService) UpsertCategory(ctx context.Context, c core.CategoryItem) (core.CategoryItem, error) {
	if c.DefaultValue.Cents < 0 {
		return core.CategoryItem{}, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = s.newID()
		s.settings.Categories = append(s.settings.Categories, c)
	} else {
		found := false
		for i := range s.settings.Categories {
			if s.settings.Categories[i].ID == c.ID {
				s.settings.Categories[i] = c
				found = true
				break
			}
		}
		if !found {
			return core.CategoryItem{}, ErrNotFound
		}
	}

	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return core.CategoryItem{}, fmt.Errorf("persist settings: %w", err)
	}
	return c, nil
}

// RemoveCategory deletes a pricing preset by id.
func (s *SettingsService) RemoveCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.settings.Categories {
		if s.settings.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.settings.Categories = append(s.settings.Categories[:idx], s.settings.Categories[idx+1:]...)

	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// PriceFor resolves a category's price with the configured discount
// optionally applied. Unknown categories price at zero.
func (s *SettingsService) PriceFor(category string, applyDiscount bool) core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.PriceFor(category, applyDiscount)
}

// Reload replaces in-memory state from storage. Called after a restore.
func (s *SettingsService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.store.Settings(ctx)
}
