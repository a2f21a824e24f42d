// Package session keeps the minimal per-session identity. There is no
// credential backend: any non-empty credentials are accepted, and the session
// is write-through persisted next to the cart so it survives restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/arnoldart/shophub/internal/domain"
	"github.com/arnoldart/shophub/internal/snapshot"
)

// ValidationError reports a blank credential field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// Session is what gets persisted per session id.
type Session struct {
	User     *domain.User `json:"user"`
	LoggedIn bool         `json:"logged_in"`
}

type Service struct {
	snapshots snapshot.Store
}

func NewService(snapshots snapshot.Store) *Service {
	return &Service{snapshots: snapshots}
}

// Register creates the session identity. All three fields are required;
// nothing is verified beyond that.
func (s *Service) Register(ctx context.Context, sessionID, name, email, password string) (*Session, error) {
	if err := requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	sess := &Session{
		User: &domain.User{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
		},
		LoggedIn: true,
	}
	if err := s.snapshots.Save(ctx, snapshot.SessionKey(sessionID), sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// Login accepts any non-empty credentials. A previously registered name is
// kept; otherwise the display name is derived from the email.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*Session, error) {
	if err := requireFields(map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	sess := s.Current(ctx, sessionID)
	if sess.User == nil || sess.User.Email != email {
		sess = &Session{
			User: &domain.User{
				ID:    uuid.NewString(),
				Name:  displayName(email),
				Email: email,
			},
		}
	}
	sess.LoggedIn = true

	if err := s.snapshots.Save(ctx, snapshot.SessionKey(sessionID), sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// Logout drops the identity for the session slot.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.snapshots.Delete(ctx, snapshot.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current loads the persisted session, failing open to an anonymous one when
// the slot is missing, unreadable, or malformed.
func (s *Service) Current(ctx context.Context, sessionID string) *Session {
	var sess Session
	err := s.snapshots.Load(ctx, snapshot.SessionKey(sessionID), &sess)
	switch {
	case err == nil:
		return &sess
	case errors.Is(err, snapshot.ErrNoSnapshot):
		return &Session{}
	default:
		log.Printf("session load failed for %s, treating as anonymous: %v", sessionID, err)
		return &Session{}
	}
}

func requireFields(fields map[string]string) error {
	// Deterministic order for error messages.
	for _, name := range []string{"name", "email", "password"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			return &ValidationError{Field: name}
		}
	}
	return nil
}

func displayName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
