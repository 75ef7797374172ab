// Package auth holds the login session cache and the WeChat login flow.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/3fenban/fanban-cli/internal/model"
	"github.com/3fenban/fanban-cli/internal/storage"
)

const (
	tokenKey = "wx_token"
	userKey  = "wx_user"

	// loginExpiry is the fixed local session lifetime, independent of
	// server-side token expiry. Checked lazily on load, never by a timer.
	loginExpiry = 7 * 24 * time.Hour
)

// Validator checks a token against the server. *api.Client satisfies it via
// WechatCheck.
type Validator interface {
	WechatCheck(ctx context.Context, token string) (bool, error)
}

// SessionStore persists the login token and user profile as a unit. There is
// no ambient singleton; components that need auth state take a *SessionStore.
type SessionStore struct {
	store     storage.Store
	validator Validator
	now       func() time.Time
}

// NewSessionStore returns a SessionStore over store, revalidating loads
// against validator.
func NewSessionStore(store storage.Store, validator Validator) *SessionStore {
	return &SessionStore{store: store, validator: validator, now: time.Now}
}

// Load returns the cached session, or nil when there is none. A session older
// than seven days is cleared and reported as absent without a server
// round-trip; a fresher one is returned only when the server confirms the
// token is still valid.
func (s *SessionStore) Load(ctx context.Context) (*model.Session, error) {
	var token string
	haveToken, err := s.store.Get(tokenKey, &token)
	if err != nil {
		return nil, err
	}
	var user model.User
	haveUser, err := s.store.Get(userKey, &user)
	if err != nil {
		return nil, err
	}
	if !haveToken || !haveUser || token == "" {
		return nil, nil
	}

	if lastLogin := user.LastLoginTime(); !lastLogin.IsZero() {
		if s.now().Sub(lastLogin) > loginExpiry {
			_ = s.Clear()
			return nil, nil
		}
	}

	valid, err := s.validator.WechatCheck(ctx, token)
	if err != nil || !valid {
		_ = s.Clear()
		return nil, nil
	}
	return &model.Session{Token: token, User: user}, nil
}

// Save persists the token and user together. The token is written first; a
// crash between the two writes leaves a token without a user, which Load
// treats as no session. That window is a known, accepted inconsistency.
func (s *SessionStore) Save(user model.User, token string) error {
	if err := s.store.Set(tokenKey, token); err != nil {
		return err
	}
	return s.store.Set(userKey, user)
}

// Clear removes both session keys. It is idempotent.
func (s *SessionStore) Clear() error {
	return errors.Join(
		s.store.Remove(tokenKey),
		s.store.Remove(userKey),
	)
}

// CurrentToken returns the cached token without validation, or "" when
// absent.
func (s *SessionStore) CurrentToken() string {
	var token string
	if ok, err := s.store.Get(tokenKey, &token); err != nil || !ok {
		return ""
	}
	return token
}

// CurrentUser returns the cached user profile without validation, or nil
// when absent.
func (s *SessionStore) CurrentUser() *model.User {
	var user model.User
	if ok, err := s.store.Get(userKey, &user); err != nil || !ok {
		return nil
	}
	return &user
}

// Logout discards the local session.
func (s *SessionStore) Logout() error {
	return s.Clear()
}
