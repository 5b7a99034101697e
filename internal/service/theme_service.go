package service

import (
	"context"

	"studyaid/internal/logger"
	"studyaid/internal/models"
)

// PreferenceStore is a durable per-visitor key/value store
type PreferenceStore interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
}

// NoopPreferenceStore is used when persistence is disabled.
// Every key reads as absent and writes are dropped.
type NoopPreferenceStore struct{}

func (NoopPreferenceStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}

func (NoopPreferenceStore) Set(context.Context, string, string, string) error {
	return nil
}

// ThemeService derives, flips and persists the visitor's theme.
// Store failures are logged and swallowed; the applied theme still changes.
type ThemeService struct {
	store  PreferenceStore
	logger *logger.Logger
}

// NewThemeService creates a new theme service
func NewThemeService(store PreferenceStore, log *logger.Logger) *ThemeService {
	if store == nil {
		store = NoopPreferenceStore{}
	}
	return &ThemeService{
		store:  store,
		logger: log.With("component", "ThemeService"),
	}
}

// DeriveTheme picks a theme from the environment signal alone
func DeriveTheme(prefersLight bool) models.Theme {
	if prefersLight {
		return models.ThemeLight
	}
	return models.ThemeDark
}

// Initialize returns the stored theme, falling back to the environment signal
func (s *ThemeService) Initialize(ctx context.Context, visitorID string, prefersLight bool) models.Theme {
	if theme, ok := s.stored(ctx, visitorID); ok {
		return theme
	}
	return DeriveTheme(prefersLight)
}

// Toggle flips the currently applied theme and persists the result.
// An unset current theme is derived the same way Initialize does.
func (s *ThemeService) Toggle(ctx context.Context, visitorID string, current models.Theme, prefersLight bool) models.Theme {
	if _, ok := models.ParseTheme(string(current)); !ok {
		current = s.Initialize(ctx, visitorID, prefersLight)
	}
	next := current.Opposite()
	s.persist(ctx, visitorID, next)
	return next
}

func (s *ThemeService) stored(ctx context.Context, visitorID string) (models.Theme, bool) {
	if visitorID == "" {
		return "", false
	}
	value, ok, err := s.store.Get(ctx, visitorID, models.ThemePreferenceKey)
	if err != nil {
		s.logger.Debug("preference store unavailable on read", "visitor", visitorID, "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return models.ParseTheme(value)
}

func (s *ThemeService) persist(ctx context.Context, visitorID string, theme models.Theme) {
	if visitorID == "" {
		return
	}
	if err := s.store.Set(ctx, visitorID, models.ThemePreferenceKey, string(theme)); err != nil {
		s.logger.Debug("preference store unavailable on write", "visitor", visitorID, "error", err)
	}
}
