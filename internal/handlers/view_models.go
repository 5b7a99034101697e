package handlers

import (
	"html/template"

	"studyaid/internal/models"
	"studyaid/internal/service"
)

// PageView is the data passed to page.tmpl
type PageView struct {
	Title         string
	Page          service.PageSnapshot
	Greeting      string
	BackendStatus string
	CSRFToken     string
	// Seconds before a no-script refresh while a tutor reply is pending; 0 disables it
	RefreshSeconds int
}

// ChatMessageView is a chat message with its Markdown already rendered
type ChatMessageView struct {
	ID     string               `json:"id"`
	Role   models.ChatRole      `json:"role"`
	Status models.MessageStatus `json:"status"`
	Text   string               `json:"text"`
	HTML   template.HTML        `json:"html"`
}

// pageJSON is the JSON view of a page; Chat shadows the snapshot's raw messages
type pageJSON struct {
	service.PageSnapshot
	Chat          []ChatMessageView `json:"chat"`
	Greeting      string            `json:"greeting,omitempty"`
	BackendStatus string            `json:"backendStatus"`
	CSRFToken     string            `json:"csrfToken"`
}

type drillJSON struct {
	Feedback *service.DrillFeedback `json:"feedback,omitempty"`
	Drill    service.DrillView      `json:"drill"`
}

type tutorSubmitJSON struct {
	User        ChatMessageView `json:"user"`
	Placeholder ChatMessageView `json:"placeholder"`
}

func newChatMessageView(msg models.ChatMessage, md *Markdown) ChatMessageView {
	return ChatMessageView{
		ID:     msg.ID,
		Role:   msg.Role,
		Status: msg.Status,
		Text:   msg.Text,
		HTML:   md.HTML(msg.Text),
	}
}

func newChatMessageViews(msgs []models.ChatMessage, md *Markdown) []ChatMessageView {
	views := make([]ChatMessageView, len(msgs))
	for i, msg := range msgs {
		views[i] = newChatMessageView(msg, md)
	}
	return views
}

// MarkdownNotifier renders tutor replies before handing them to the event hub
type MarkdownNotifier struct {
	next service.Notifier
	md   *Markdown
}

func NewMarkdownNotifier(next service.Notifier, md *Markdown) *MarkdownNotifier {
	return &MarkdownNotifier{next: next, md: md}
}

func (n *MarkdownNotifier) Publish(channel, event string, data any) {
	if msg, ok := data.(models.ChatMessage); ok {
		data = newChatMessageView(msg, n.md)
	}
	n.next.Publish(channel, event, data)
}
