package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arnoldart/shophub/internal/session"
)

type SessionHandler struct {
	sessions *session.Service
	timeout  time.Duration
}

func NewSessionHandler(svc *session.Service, timeout time.Duration) *SessionHandler {
	return &SessionHandler{
		sessions: svc,
		timeout:  timeout,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.sessions.Login(ctx, sessionID, req.Email, req.Password)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess, err := h.sessions.Register(ctx, sessionID, req.Name, req.Email, req.Password)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sess)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	if err := h.sessions.Logout(ctx, sessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to log out")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	respondJSON(w, http.StatusOK, h.sessions.Current(ctx, sessionID))
}

func handleSessionError(w http.ResponseWriter, err error) {
	var verr *session.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, "validation_failed", verr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "session operation failed")
}
