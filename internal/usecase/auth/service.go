// Package auth issues and tears down explicit dashboard sessions.
// Session state lives in one owner with init-on-login and explicit
// teardown on logout; nothing is kept in ambient storage. Sessions do
// not gate the data API.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTTL is the session lifetime used when no explicit ttl is configured
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials is returned when the email or password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when the token does not belong to a live session
	ErrSessionNotFound = errors.New("session not found")
)

// Session represents an authenticated dashboard session
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service handles login, session validation, and logout
type Service struct {
	secret []byte
	ttl    time.Duration

	mu       sync.RWMutex
	creds    map[string]string // email -> bcrypt hash
	sessions map[string]Session
}

// NewService creates a new auth Service instance.
// secret signs session tokens; ttl bounds session lifetime.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{
		secret:   secret,
		ttl:      ttl,
		creds:    make(map[string]string),
		sessions: make(map[string]Session),
	}
}

// RegisterCredential stores a login credential, hashing the password
// with bcrypt
func (s *Service) RegisterCredential(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[email] = string(hash)
	return nil
}

// Login checks the credential and opens a new session with a signed
// token. Returns ErrInvalidCredentials when the email is unknown or the
// password does not match.
func (s *Service) Login(email, password string) (Session, error) {
	s.mu.RLock()
	hash, ok := s.creds[email]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	session := Session{
		Token:     token,
		Email:     email,
		CreatedAt: now,
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// Validate checks the token signature and expiry and resolves the live
// session. A logged-out or expired token returns ErrSessionNotFound.
func (s *Service) Validate(token string) (Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, ErrSessionNotFound
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	return session, nil
}

// Logout tears down the session for the token. Idempotent: logging out
// an unknown token is a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
