package progress

import (
	"sync"
	"time"
)

// Event is one pipeline progress notification, scoped to the user who
// triggered the run.
type Event struct {
	RunID    string    `json:"run_id"`
	Workflow string    `json:"workflow"`
	Stage    string    `json:"stage"`
	Status   string    `json:"status"` // started, completed, failed
	Message  string    `json:"message,omitempty"`
	Time     time.Time `json:"time"`
}

// Publisher is the side of the hub the orchestrator sees.
type Publisher interface {
	Publish(username string, ev Event)
}

// Hub fans pipeline events out to per-user subscribers. A slow
// subscriber drops events rather than stalling the pipeline.
type Hub struct {
	mu   sync.Mutex
	subs map[string][]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]chan Event)}
}

// Subscribe registers a listener for the user's events. The returned
// cancel func must be called when the listener goes away.
func (h *Hub) Subscribe(username string) (<-chan Event, func()) {
	ch := make(chan Event, 32)

	h.mu.Lock()
	h.subs[username] = append(h.subs[username], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		channels := h.subs[username]
		for i, c := range channels {
			if c == ch {
				h.subs[username] = append(channels[:i], channels[i+1:]...)
				close(c)
				break
			}
		}
		if len(h.subs[username]) == 0 {
			delete(h.subs, username)
		}
	}

	return ch, cancel
}

// Publish delivers ev to every subscriber of username.
func (h *Hub) Publish(username string, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[username] {
		select {
		case ch <- ev:
		default:
		}
	}
}
