package models

import "time"

// ChatRole identifies who wrote a chat message
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// MessageStatus tracks whether an assistant reply has been resolved
type MessageStatus string

const (
	StatusPending  MessageStatus = "pending"
	StatusResolved MessageStatus = "resolved"
	StatusFailed   MessageStatus = "failed"
)

// ChatMessage is one bubble in the tutor chat log
type ChatMessage struct {
	ID        string        `json:"id"`
	Role      ChatRole      `json:"role"`
	Text      string        `json:"text"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Pending reports whether the message is an unresolved placeholder
func (m ChatMessage) Pending() bool {
	return m.Status == StatusPending
}

// TutorRule maps keywords to a canned reply. A rule matches when any
// keyword is contained in the lowercased prompt.
type TutorRule struct {
	Keywords []string `json:"keywords"`
	Reply    string   `json:"reply"`
}
