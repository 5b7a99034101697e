package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyaid/internal/catalog"
	"studyaid/internal/logger"
	"studyaid/internal/models"
)

// ErrPageNotFound is returned for unknown, expired or foreign page sessions
var ErrPageNotFound = errors.New("page session not found")

// EventTutorReply is published when a tutor placeholder resolves
const EventTutorReply = "tutor.reply"

// Notifier fans events out to listeners on a channel (one channel per page)
type Notifier interface {
	Publish(channel, event string, data any)
}

// PageSession is the in-memory state of one loaded page. It lives until
// the visitor loads the entry point again or the session expires.
type PageSession struct {
	ID        string
	VisitorID string
	CreatedAt time.Time

	mu           sync.Mutex
	lastSeen     time.Time
	theme        models.Theme
	prefersLight bool
	drills       *DrillEngine
	cards        *FlashcardDeck
	tabs         *TabSwitcher
	chat         *TutorChat
}

// PageSnapshot is a consistent copy of everything the page renders
type PageSnapshot struct {
	ID          string               `json:"id"`
	Theme       models.Theme         `json:"theme"`
	ToggleLabel string               `json:"toggleLabel"`
	Drill       DrillView            `json:"drill"`
	Flashcard   FlashcardView        `json:"flashcard"`
	Tabs        []TabView            `json:"tabs"`
	ActiveTab   string               `json:"activeTab"`
	Chat        []models.ChatMessage `json:"chat"`
	ChatPending bool                 `json:"chatPending"`
}

// Snapshot copies the session's state under its lock
func (p *PageSession) Snapshot() PageSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PageSnapshot{
		ID:          p.ID,
		Theme:       p.theme,
		ToggleLabel: p.theme.ToggleLabel(),
		Drill:       p.drills.Current(),
		Flashcard:   p.cards.Current(),
		Tabs:        p.tabs.Tabs(),
		ActiveTab:   p.tabs.Active(),
		Chat:        p.chat.Messages(),
		ChatPending: p.chat.HasPending(),
	}
}

// Theme returns the applied theme
func (p *PageSession) Theme() models.Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SelectDrill evaluates a choice on the drill rendered at renderIndex
func (p *PageSession) SelectDrill(renderIndex, choice int) (DrillFeedback, DrillView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fb, err := p.drills.Select(renderIndex, choice)
	return fb, p.drills.Current(), err
}

// AdvanceDrill moves to the next drill question
func (p *PageSession) AdvanceDrill() DrillView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drills.Advance()
}

// CardAction names a flashcard operation
type CardAction string

const (
	CardNext     CardAction = "next"
	CardPrevious CardAction = "previous"
	CardFlip     CardAction = "flip"
	CardShuffle  CardAction = "shuffle"
)

// ErrUnknownCardAction is returned for an unrecognised flashcard action
var ErrUnknownCardAction = errors.New("unknown flashcard action")

// Flashcard applies action to the deck
func (p *PageSession) Flashcard(action CardAction) (FlashcardView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch action {
	case CardNext:
		return p.cards.Next(), nil
	case CardPrevious:
		return p.cards.Previous(), nil
	case CardFlip:
		return p.cards.Flip(), nil
	case CardShuffle:
		return p.cards.Shuffle(), nil
	}
	return p.cards.Current(), fmt.Errorf("%w: %q", ErrUnknownCardAction, action)
}

// ActivateTab switches tabs. Unknown names hide every panel.
func (p *PageSession) ActivateTab(name string) []TabView {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tabs.Activate(name)
	return p.tabs.Tabs()
}

// Chat exposes the session's tutor log. TutorChat has its own lock.
func (p *PageSession) Chat() *TutorChat {
	return p.chat
}

func (p *PageSession) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *PageSession) expired(now time.Time, ttl time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return now.Sub(p.lastSeen) > ttl
}

// PageServiceOptions configures a PageService
type PageServiceOptions struct {
	Catalog      catalog.Catalog
	Themes       *ThemeService
	Responder    Responder
	TutorLatency time.Duration
	Notifier     Notifier
	TTL          time.Duration
	Logger       *logger.Logger
}

// PageService creates and tracks page sessions in memory
type PageService struct {
	mu    sync.RWMutex
	pages map[string]*PageSession

	catalog      catalog.Catalog
	themes       *ThemeService
	responder    Responder
	tutorLatency time.Duration
	notifier     Notifier
	ttl          time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

// NewPageService validates the catalog and creates an empty session registry
func NewPageService(opts PageServiceOptions) (*PageService, error) {
	if err := opts.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if opts.Themes == nil {
		return nil, errors.New("theme service is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	responder := opts.Responder
	if responder == nil {
		responder = NewKeywordResponder(opts.Catalog.TutorRules, opts.Catalog.TutorDefault)
	}
	return &PageService{
		pages:        make(map[string]*PageSession),
		catalog:      opts.Catalog,
		themes:       opts.Themes,
		responder:    responder,
		tutorLatency: opts.TutorLatency,
		notifier:     opts.Notifier,
		ttl:          opts.TTL,
		logger:       log.With("component", "PageService"),
		now:          time.Now,
	}, nil
}

// Create starts a fresh page session for a visitor: every engine is reset
// and the theme is initialized from the preference store or the environment signal.
func (s *PageService) Create(ctx context.Context, visitorID string, prefersLight bool) (*PageSession, error) {
	drills, err := NewDrillEngine(s.catalog.Drills)
	if err != nil {
		return nil, err
	}
	cards, err := NewFlashcardDeck(s.catalog.Flashcards, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	page := &PageSession{
		ID:           uuid.New().String(),
		VisitorID:    visitorID,
		CreatedAt:    now,
		lastSeen:     now,
		theme:        s.themes.Initialize(ctx, visitorID, prefersLight),
		prefersLight: prefersLight,
		drills:       drills,
		cards:        cards,
		tabs:         NewTabSwitcher(DefaultTabs(), models.TabDrills),
	}
	page.chat = NewTutorChat(TutorChatOptions{
		Responder:     s.responder,
		Latency:       s.tutorLatency,
		FailureNotice: catalog.TutorFailureNotice,
		OnReply:       s.replyPublisher(page.ID),
		Logger:        s.logger,
	})

	s.mu.Lock()
	s.pages[page.ID] = page
	s.mu.Unlock()

	s.logger.Debug("page session created", "page", page.ID, "visitor", visitorID, "theme", page.theme)
	return page, nil
}

func (s *PageService) replyPublisher(pageID string) ReplyListener {
	return func(msg models.ChatMessage) {
		if s.notifier != nil {
			s.notifier.Publish(pageID, EventTutorReply, msg)
		}
	}
}

// Get returns the visitor's page session. Sessions belonging to another
// visitor are reported as not found.
func (s *PageService) Get(id, visitorID string) (*PageSession, error) {
	s.mu.RLock()
	page, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok || page.VisitorID != visitorID {
		return nil, ErrPageNotFound
	}
	now := s.now()
	if s.ttl > 0 && page.expired(now, s.ttl) {
		return nil, ErrPageNotFound
	}
	page.touch(now)
	return page, nil
}

// ToggleTheme flips the page's applied theme and persists the new value
func (s *PageService) ToggleTheme(ctx context.Context, page *PageSession) models.Theme {
	page.mu.Lock()
	defer page.mu.Unlock()
	page.theme = s.themes.Toggle(ctx, page.VisitorID, page.theme, page.prefersLight)
	return page.theme
}

// CleanupExpired drops sessions idle for longer than the TTL and returns how many were removed
func (s *PageService) CleanupExpired() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, page := range s.pages {
		if page.expired(now, s.ttl) {
			delete(s.pages, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *PageService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Catalog returns the catalog sessions are built from
func (s *PageService) Catalog() catalog.Catalog {
	return s.catalog
}
