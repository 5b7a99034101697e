package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyaid/internal/logger"
	"studyaid/internal/models"
)

// ErrEmptyPrompt is returned when a chat submission has no content
var ErrEmptyPrompt = errors.New("prompt is empty")

// Responder resolves a user prompt into a tutor reply
type Responder interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// KeywordResponder answers with the reply of the first rule whose keyword
// appears in the lowercased prompt, or a fallback tip when none does.
type KeywordResponder struct {
	rules    []models.TutorRule
	fallback string
}

// NewKeywordResponder creates a responder over a copy of rules, kept in priority order
func NewKeywordResponder(rules []models.TutorRule, fallback string) *KeywordResponder {
	copied := make([]models.TutorRule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(kw)
		}
		copied[i] = models.TutorRule{Keywords: keywords, Reply: rule.Reply}
	}
	return &KeywordResponder{rules: copied, fallback: fallback}
}

func (r *KeywordResponder) Reply(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lowered := strings.ToLower(prompt)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lowered, kw) {
				return rule.Reply, nil
			}
		}
	}
	return r.fallback, nil
}

// ReplyListener is told about every placeholder once it has been resolved
type ReplyListener func(msg models.ChatMessage)

// TutorChat is an append-only chat log whose assistant replies resolve
// asynchronously. Placeholders are addressed by ID, so overlapping
// submissions resolve independently.
type TutorChat struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
	position map[string]int

	responder     Responder
	latency       time.Duration
	failureNotice string
	onReply       ReplyListener
	logger        *logger.Logger
	now           func() time.Time

	pending sync.WaitGroup
}

// TutorChatOptions configures a TutorChat
type TutorChatOptions struct {
	Responder     Responder
	Latency       time.Duration
	FailureNotice string
	OnReply       ReplyListener
	Logger        *logger.Logger
}

// NewTutorChat creates an empty chat log
func NewTutorChat(opts TutorChatOptions) *TutorChat {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &TutorChat{
		position:      make(map[string]int),
		responder:     opts.Responder,
		latency:       opts.Latency,
		failureNotice: opts.FailureNotice,
		onReply:       opts.OnReply,
		logger:        log.With("component", "TutorChat"),
		now:           time.Now,
	}
}

// Submit appends the user's message and a pending assistant placeholder,
// then resolves the placeholder in the background. Blank prompts are rejected
// without touching the log.
func (c *TutorChat) Submit(prompt string) (models.ChatMessage, models.ChatMessage, error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return models.ChatMessage{}, models.ChatMessage{}, ErrEmptyPrompt
	}

	c.mu.Lock()
	user := c.appendLocked(models.RoleUser, text, models.StatusResolved)
	placeholder := c.appendLocked(models.RoleAssistant, "Thinking…", models.StatusPending)
	c.mu.Unlock()

	c.pending.Add(1)
	go c.resolve(placeholder.ID, text)

	return user, placeholder, nil
}

func (c *TutorChat) appendLocked(role models.ChatRole, text string, status models.MessageStatus) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Status:    status,
		CreatedAt: c.now(),
	}
	c.position[msg.ID] = len(c.messages)
	c.messages = append(c.messages, msg)
	return msg
}

// resolve never gives up and never retries: the placeholder always ends
// up holding either the reply or the failure notice.
func (c *TutorChat) resolve(id, prompt string) {
	defer c.pending.Done()

	if c.latency > 0 {
		time.Sleep(c.latency)
	}

	reply, err := c.reply(prompt)
	status := models.StatusResolved
	if err != nil {
		c.logger.Warn("tutor reply failed", "message", id, "error", err)
		reply = c.failureNotice
		status = models.StatusFailed
	}

	c.mu.Lock()
	pos, ok := c.position[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	c.messages[pos].Text = reply
	c.messages[pos].Status = status
	resolved := c.messages[pos]
	c.mu.Unlock()

	if c.onReply != nil {
		c.onReply(resolved)
	}
}

func (c *TutorChat) reply(prompt string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("responder panicked: %v", r)
		}
	}()
	if c.responder == nil {
		return "", errors.New("no responder configured")
	}
	return c.responder.Reply(context.Background(), prompt)
}

// Messages returns a snapshot of the log in append order
func (c *TutorChat) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Message looks up a single message by ID
func (c *TutorChat) Message(id string) (models.ChatMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pos, ok := c.position[id]
	if !ok {
		return models.ChatMessage{}, false
	}
	return c.messages[pos], true
}

// HasPending reports whether any placeholder is still unresolved
func (c *TutorChat) HasPending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.messages {
		if m.Pending() {
			return true
		}
	}
	return false
}

// Wait blocks until every submitted placeholder has resolved
func (c *TutorChat) Wait() {
	c.pending.Wait()
}
