package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/voice-bridge/internal/auth"
)

type signupRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.auth.Create(r.Context(), req.Username, req.DisplayName, req.Password)
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "username already exists")
	case errors.Is(err, auth.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error(r.Context(), "Signup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
	default:
		s.logger.Info(r.Context(), "Account created: %s", req.Username)
		writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.auth.Verify(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.sessions.Issue(req.Username)
	if err != nil {
		s.logger.Error(r.Context(), "Session issue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	s.setSessionCookie(w, token, s.sessions.TTL())

	cred, err := s.auth.Get(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load account")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Username:    cred.Username,
		DisplayName: cred.DisplayName,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
