// Package sse fans page events out to browsers over Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyaid/internal/logger"
)

const (
	outboundBuffer    = 16
	heartbeatInterval = 15 * time.Second
)

// Message is one event delivered to subscribers of Channel
type Message struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// Client is a single streaming connection subscribed to one or more channels
type Client struct {
	ID       uuid.UUID
	channels map[string]bool
	outbound chan Message
	done     chan struct{}
	once     sync.Once
}

// Hub tracks clients by channel; a channel is a page session ID
type Hub struct {
	mu            sync.RWMutex
	logger        *logger.Logger
	subscriptions map[string]map[*Client]bool
	heartbeat     time.Duration
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{
		logger:        log.With("component", "SSEHub"),
		subscriptions: make(map[string]map[*Client]bool),
		heartbeat:     heartbeatInterval,
	}
}

func (hub *Hub) NewClient() *Client {
	return &Client{
		ID:       uuid.New(),
		channels: make(map[string]bool),
		outbound: make(chan Message, outboundBuffer),
		done:     make(chan struct{}),
	}
}

// Subscribe adds client to channel
func (hub *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	client.channels[channel] = true
	clients, ok := hub.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.logger.Debug("SSE client subscribed", "clientID", client.ID, "channel", channel)
}

func (hub *Hub) removeClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for ch := range client.channels {
		if subs, ok := hub.subscriptions[ch]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(hub.subscriptions, ch)
			}
		}
	}
	client.channels = make(map[string]bool)
}

// Subscribers returns how many clients listen on channel
func (hub *Hub) Subscribers(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscriptions[channel])
}

// Publish delivers an event to every client on channel. Slow clients drop messages
// rather than blocking the publisher.
func (hub *Hub) Publish(channel, event string, data any) {
	if channel == "" {
		return
	}
	msg := Message{Channel: channel, Event: event, Data: data}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for c := range hub.subscriptions[channel] {
		select {
		case c.outbound <- msg:
		default:
			hub.logger.Warn("Dropping SSE message; outbound buffer full", "clientID", c.ID, "event", event)
		}
	}
}

// ServeHTTP streams events to client until the request ends or the client is closed
func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(hub.heartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			hub.logger.Debug("SSE client context done", "clientID", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-client.outbound:
			payload, err := json.Marshal(msg.Data)
			if err != nil {
				hub.logger.Warn("Failed to marshal SSE message", "error", err, "event", msg.Event)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, payload)
			flusher.Flush()
		}
	}
}

// CloseClient unsubscribes client and stops its stream. Safe to call more than once.
func (hub *Hub) CloseClient(client *Client) {
	client.once.Do(func() {
		close(client.done)
		hub.removeClient(client)
	})
}

// Close ends every open stream. Register it with http.Server.RegisterOnShutdown so
// Shutdown does not wait on long-lived event requests.
func (hub *Hub) Close() {
	hub.mu.RLock()
	clients := make([]*Client, 0)
	seen := make(map[*Client]bool)
	for _, subs := range hub.subscriptions {
		for c := range subs {
			if !seen[c] {
				seen[c] = true
				clients = append(clients, c)
			}
		}
	}
	hub.mu.RUnlock()

	for _, c := range clients {
		hub.CloseClient(c)
	}
	hub.logger.Info("SSE hub closed", "clients", len(clients))
}
