package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/voice-bridge/internal/assets"
	"github.com/nguyentantai21042004/voice-bridge/internal/auth"
	"github.com/nguyentantai21042004/voice-bridge/internal/history"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/internal/pipeline"
	"github.com/nguyentantai21042004/voice-bridge/internal/progress"
)

type Server struct {
	auth     auth.Store
	sessions *auth.Sessions
	history  history.Store
	orch     pipeline.Orchestrator
	registry assets.Registry
	hub      *progress.Hub
	logger   logger.Logger
	upgrader websocket.Upgrader
}

// New wires the browser-facing surface: JSON API, single-use asset
// downloads, the progress WebSocket and the embedded page.
func New(
	authStore auth.Store,
	sessions *auth.Sessions,
	historyStore history.Store,
	orch pipeline.Orchestrator,
	registry assets.Registry,
	hub *progress.Hub,
	log logger.Logger,
) http.Handler {
	s := &Server{
		auth:     authStore,
		sessions: sessions,
		history:  historyStore,
		orch:     orch,
		registry: registry,
		hub:      hub,
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.Handle("POST /api/translate", s.requireAuth(s.handleTranslate))
	mux.Handle("POST /api/summarize", s.requireAuth(s.handleSummarize))
	mux.Handle("GET /api/history", s.requireAuth(s.handleHistory))
	mux.Handle("GET /api/assets/{id}", s.requireAuth(s.handleAsset))
	mux.Handle("GET /ws/progress", s.requireAuth(s.handleProgress))

	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}
