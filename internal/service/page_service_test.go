package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyaid/internal/catalog"
	"studyaid/internal/logger"
	"studyaid/internal/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(channel, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, channel+":"+event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func newTestPageService(t *testing.T, store PreferenceStore, notifier Notifier) *PageService {
	t.Helper()
	svc, err := NewPageService(PageServiceOptions{
		Catalog:  catalog.Default(),
		Themes:   NewThemeService(store, logger.NewNop()),
		Notifier: notifier,
		TTL:      time.Hour,
		Logger:   logger.NewNop(),
	})
	require.NoError(t, err)
	return svc
}

func TestPageServiceRejectsInvalidCatalog(t *testing.T) {
	_, err := NewPageService(PageServiceOptions{
		Catalog: catalog.Catalog{},
		Themes:  NewThemeService(nil, logger.NewNop()),
	})
	assert.ErrorIs(t, err, models.ErrEmptyCatalog)
}

func TestPageServiceCreateResetsState(t *testing.T) {
	svc := newTestPageService(t, newMemoryStore(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, "v1", false)
	require.NoError(t, err)
	first.AdvanceDrill()
	first.ActivateTab(models.TabTutor)

	second, err := svc.Create(ctx, "v1", false)
	require.NoError(t, err)
	snap := second.Snapshot()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, snap.Drill.Index)
	assert.Equal(t, models.TabDrills, snap.ActiveTab)
	assert.Empty(t, snap.Chat)
	assert.Equal(t, 2, svc.Len())
}

func TestPageServiceThemeSurvivesReload(t *testing.T) {
	store := newMemoryStore()
	svc := newTestPageService(t, store, nil)
	ctx := context.Background()

	page, err := svc.Create(ctx, "v1", true)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, page.Theme())
	assert.Equal(t, "Lights Off", page.Snapshot().ToggleLabel)

	assert.Equal(t, models.ThemeDark, svc.ToggleTheme(ctx, page))
	assert.Equal(t, "Lights On", page.Snapshot().ToggleLabel)

	stored, ok, _ := store.Get(ctx, "v1", models.ThemePreferenceKey)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)

	reloaded, err := svc.Create(ctx, "v1", true)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, reloaded.Theme())
}

func TestPageServiceGetChecksVisitor(t *testing.T) {
	svc := newTestPageService(t, nil, nil)
	page, err := svc.Create(context.Background(), "v1", false)
	require.NoError(t, err)

	got, err := svc.Get(page.ID, "v1")
	require.NoError(t, err)
	assert.Same(t, page, got)

	_, err = svc.Get(page.ID, "v2")
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.Get("missing", "v1")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageServiceCleanupExpired(t *testing.T) {
	svc := newTestPageService(t, nil, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stale, err := svc.Create(context.Background(), "v1", false)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	fresh, err := svc.Create(context.Background(), "v1", false)
	require.NoError(t, err)

	_, err = svc.Get(stale.ID, "v1")
	assert.ErrorIs(t, err, ErrPageNotFound)

	assert.Equal(t, 1, svc.CleanupExpired())
	assert.Equal(t, 1, svc.Len())
	_, err = svc.Get(fresh.ID, "v1")
	assert.NoError(t, err)
}

func TestPageSessionFlashcardActions(t *testing.T) {
	svc := newTestPageService(t, nil, nil)
	page, err := svc.Create(context.Background(), "v1", false)
	require.NoError(t, err)

	view, err := page.Flashcard(CardFlip)
	require.NoError(t, err)
	assert.True(t, view.Revealed)

	view, err = page.Flashcard(CardNext)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Position)

	view, err = page.Flashcard(CardShuffle)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Position)

	_, err = page.Flashcard(CardAction("juggle"))
	assert.ErrorIs(t, err, ErrUnknownCardAction)
}

func TestPageSessionTutorPublishesToPageChannel(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestPageService(t, nil, notifier)
	page, err := svc.Create(context.Background(), "v1", false)
	require.NoError(t, err)

	_, _, err = page.Chat().Submit("math tips")
	require.NoError(t, err)
	page.Chat().Wait()

	assert.Equal(t, []string{page.ID + ":" + EventTutorReply}, notifier.Events())
	assert.False(t, page.Snapshot().ChatPending)
}
