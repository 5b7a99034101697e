package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"studyaid/internal/logger"
	"studyaid/internal/models"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[visitorID+"/"+key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, visitorID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[visitorID+"/"+key] = value
	return nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (brokenStore) Set(context.Context, string, string, string) error {
	return errors.New("storage unavailable")
}

func TestThemeInitialize(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name         string
		stored       string
		prefersLight bool
		want         models.Theme
	}{
		{name: "no preference, prefers light", prefersLight: true, want: models.ThemeLight},
		{name: "no preference, no signal", prefersLight: false, want: models.ThemeDark},
		{name: "stored dark beats light signal", stored: "dark", prefersLight: true, want: models.ThemeDark},
		{name: "stored light", stored: "light", want: models.ThemeLight},
		{name: "garbage stored value ignored", stored: "neon", prefersLight: true, want: models.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			if tt.stored != "" {
				_ = store.Set(ctx, "v1", models.ThemePreferenceKey, tt.stored)
			}
			svc := NewThemeService(store, logger.NewNop())

			assert.Equal(t, tt.want, svc.Initialize(ctx, "v1", tt.prefersLight))
		})
	}
}

func TestThemeToggleFlipsAndPersists(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewThemeService(store, logger.NewNop())

	for _, prior := range []models.Theme{models.ThemeLight, models.ThemeDark} {
		next := svc.Toggle(ctx, "v1", prior, false)
		assert.Equal(t, prior.Opposite(), next)

		stored, ok, _ := store.Get(ctx, "v1", models.ThemePreferenceKey)
		assert.True(t, ok)
		assert.Equal(t, string(next), stored)
	}
}

func TestThemeToggleUnsetDerivesFirst(t *testing.T) {
	svc := NewThemeService(newMemoryStore(), logger.NewNop())

	assert.Equal(t, models.ThemeDark, svc.Toggle(context.Background(), "v1", "", true))
	assert.Equal(t, models.ThemeLight, svc.Toggle(context.Background(), "v2", "", false))
}

func TestThemeStoreFailuresAreSwallowed(t *testing.T) {
	svc := NewThemeService(brokenStore{}, logger.NewNop())
	ctx := context.Background()

	theme := svc.Initialize(ctx, "v1", true)
	assert.Equal(t, models.ThemeLight, theme)

	assert.NotPanics(t, func() {
		theme = svc.Toggle(ctx, "v1", theme, true)
	})
	assert.Equal(t, models.ThemeDark, theme)
}

func TestThemeNilStoreIsNoop(t *testing.T) {
	svc := NewThemeService(nil, logger.NewNop())

	assert.Equal(t, models.ThemeLight, svc.Toggle(context.Background(), "v1", models.ThemeDark, false))
	assert.Equal(t, models.ThemeDark, svc.Initialize(context.Background(), "v1", false))
}
