package server

import (
	"net/http"
)

// handleProgress streams the user's pipeline progress events over a
// WebSocket. The browser opens this before triggering a run.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := s.hub.Subscribe(username)
	defer cancel()

	// Drain reads so we notice when the browser goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
