// Package session manages server-side session records addressed by an
// opaque cookie token.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"memberportal/internal/model"
	"memberportal/pkg/logger"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "mp_session"
	// Lifetime is the fixed session lifetime. Expiry is set once at creation;
	// there is no refresh on activity.
	Lifetime = time.Hour
)

// Manager issues, resolves and destroys sessions against a Store.
type Manager struct {
	store Store
}

// NewManager creates a new Manager instance with the provided store.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
	}
}

// Issue creates an authenticated session for the user, persists it and sets
// the session cookie on the response.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, user *model.User) (*model.Session, error) {
	now := time.Now()
	sess := &model.Session{
		Token:         uuid.NewString(),
		Authenticated: true,
		Username:      user.Username,
		Role:          user.Role,
		CreatedAt:     now,
		ExpiresAt:     now.Add(Lifetime),
	}

	if err := m.store.Save(ctx, sess, Lifetime); err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	http.SetCookie(w, m.cookie(sess.Token, int(Lifetime.Seconds())))

	return sess, nil
}

// Current resolves the session for the request. A missing cookie, unknown
// token, expired record or store failure all resolve to the anonymous
// session; expired records are deleted lazily on access.
func (m *Manager) Current(ctx context.Context, r *http.Request) *model.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return model.Anonymous()
	}

	sess, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		logger.Errorf("Failed to resolve session: %s", err)
		return model.Anonymous()
	}
	if sess == nil {
		return model.Anonymous()
	}

	if sess.IsExpired() {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			logger.Errorf("Failed to delete expired session: %s", err)
		}
		return model.Anonymous()
	}

	return sess
}

// Destroy deletes the session record referenced by the request cookie and
// expires the cookie on the response.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}

	http.SetCookie(w, m.cookie("", -1))

	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
