package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/usecase/auth"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionBody struct {
	Token     string    `json:"token,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// handleLogin serves POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "handleLogin"))

	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.sessions.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error(fmt.Errorf("login: %w", err).Error())
		respondError(w, http.StatusInternalServerError, "failed to open session")
		return
	}

	respondJSON(w, http.StatusOK, sessionBody{
		Token:     session.Token,
		Email:     session.Email,
		CreatedAt: session.CreatedAt,
	})
}

// handleLogout serves POST /auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	s.sessions.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSession serves GET /auth/session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	session, err := s.sessions.Validate(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	respondJSON(w, http.StatusOK, sessionBody{
		Email:     session.Email,
		CreatedAt: session.CreatedAt,
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
