package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"memberportal/internal/model"
)

func issueTestSession(t *testing.T, m *Manager) (*model.Session, *http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	sess, err := m.Issue(context.Background(), w, &model.User{Username: "alice", Role: model.RoleUser})
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return sess, cookies[0]
}

func requestWithCookie(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/members", nil)
	r.AddCookie(cookie)
	return r
}

func TestIssueSetsCookieAndPersists(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)

	sess, cookie := issueTestSession(t, m)

	require.Equal(t, CookieName, cookie.Name)
	require.Equal(t, sess.Token, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, int(Lifetime.Seconds()), cookie.MaxAge)

	require.True(t, sess.Authenticated)
	require.Equal(t, "alice", sess.Username)
	require.WithinDuration(t, time.Now().Add(Lifetime), sess.ExpiresAt, time.Minute)

	resolved := m.Current(context.Background(), requestWithCookie(cookie))
	require.True(t, resolved.Authenticated)
	require.Equal(t, "alice", resolved.Username)
}

func TestCurrentWithoutCookieIsAnonymous(t *testing.T) {
	m := NewManager(NewMemoryStore())

	sess := m.Current(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, sess.Authenticated)
	require.Empty(t, sess.Username)
}

func TestCurrentWithUnknownTokenIsAnonymous(t *testing.T) {
	m := NewManager(NewMemoryStore())

	sess := m.Current(context.Background(), requestWithCookie(&http.Cookie{Name: CookieName, Value: "no-such-token"}))
	require.False(t, sess.Authenticated)
}

func TestCurrentWithExpiredRecordIsAnonymous(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)

	// Write an already-expired record directly, simulating an access at
	// creation time + 1 hour + epsilon.
	expired := &model.Session{
		Token:         "expired-token",
		Authenticated: true,
		Username:      "alice",
		Role:          model.RoleUser,
		CreatedAt:     time.Now().Add(-Lifetime - time.Minute),
		ExpiresAt:     time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Save(context.Background(), expired, Lifetime))

	sess := m.Current(context.Background(), requestWithCookie(&http.Cookie{Name: CookieName, Value: expired.Token}))
	require.False(t, sess.Authenticated)

	// The expired record is removed lazily.
	record, err := store.Get(context.Background(), expired.Token)
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestCurrentWithFailingStoreIsAnonymous(t *testing.T) {
	store := NewMemoryStore()
	store.FailWith = errors.New("store down")
	m := NewManager(store)

	sess := m.Current(context.Background(), requestWithCookie(&http.Cookie{Name: CookieName, Value: "any"}))
	require.False(t, sess.Authenticated)
}

func TestDestroyMakesTokenAnonymous(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)

	_, cookie := issueTestSession(t, m)

	w := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), w, requestWithCookie(cookie)))

	expired := w.Result().Cookies()
	require.Len(t, expired, 1)
	require.Empty(t, expired[0].Value)
	require.Negative(t, expired[0].MaxAge)

	// Presenting the destroyed token again resolves to anonymous.
	sess := m.Current(context.Background(), requestWithCookie(cookie))
	require.False(t, sess.Authenticated)
}
