package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/3fenban/fanban-cli/internal/model"
	"github.com/3fenban/fanban-cli/internal/storage"
)

// fakeValidator records whether the server was consulted.
type fakeValidator struct {
	valid  bool
	err    error
	called int
}

func (f *fakeValidator) WechatCheck(_ context.Context, _ string) (bool, error) {
	f.called++
	return f.valid, f.err
}

func testUser(lastLogin time.Time) model.User {
	return model.User{
		ID:          7,
		OpenID:      "o-abc",
		Nickname:    "alice",
		Avatar:      "https://cdn.example/a.png",
		TicketCount: 2,
		LastLogin:   lastLogin.Format(time.RFC3339),
	}
}

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	validator := &fakeValidator{valid: true}
	s := NewSessionStore(storage.NewMemStore(), validator)

	user := testUser(time.Now().Add(-24 * time.Hour))
	require.NoError(t, s.Save(user, "tok-123"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, "tok-123", session.Token)
	require.Equal(t, user, session.User)
	require.Equal(t, 1, validator.called)
}

func TestSessionLoadEmptyWhenNothingStored(t *testing.T) {
	validator := &fakeValidator{valid: true}
	s := NewSessionStore(storage.NewMemStore(), validator)

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
	require.Zero(t, validator.called)
}

func TestSessionExpiresAfterSevenDaysWithoutServerCall(t *testing.T) {
	validator := &fakeValidator{valid: true}
	store := storage.NewMemStore()
	s := NewSessionStore(store, validator)

	require.NoError(t, s.Save(testUser(time.Now().Add(-8*24*time.Hour)), "tok-old"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
	// Expiry short-circuits: the server must not have been consulted, and
	// the stale session is gone.
	require.Zero(t, validator.called)
	require.Equal(t, "", s.CurrentToken())
	require.Nil(t, s.CurrentUser())
}

func TestSessionJustUnderExpiryIsValidated(t *testing.T) {
	validator := &fakeValidator{valid: true}
	s := NewSessionStore(storage.NewMemStore(), validator)

	require.NoError(t, s.Save(testUser(time.Now().Add(-6*24*time.Hour)), "tok-fresh"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, 1, validator.called)
}

func TestSessionClearedOnNegativeValidation(t *testing.T) {
	validator := &fakeValidator{valid: false}
	s := NewSessionStore(storage.NewMemStore(), validator)

	require.NoError(t, s.Save(testUser(time.Now()), "tok-revoked"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
	require.Equal(t, "", s.CurrentToken())
}

func TestSessionClearedOnValidationFailure(t *testing.T) {
	validator := &fakeValidator{err: errors.New("connection refused")}
	s := NewSessionStore(storage.NewMemStore(), validator)

	require.NoError(t, s.Save(testUser(time.Now()), "tok-x"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionClearIsIdempotent(t *testing.T) {
	s := NewSessionStore(storage.NewMemStore(), &fakeValidator{valid: true})
	require.NoError(t, s.Save(testUser(time.Now()), "tok"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	require.Equal(t, "", s.CurrentToken())
}

func TestSessionUnknownLastLoginStillValidates(t *testing.T) {
	// A missing last_login cannot be age-checked; server validation decides.
	validator := &fakeValidator{valid: true}
	s := NewSessionStore(storage.NewMemStore(), validator)

	user := testUser(time.Now())
	user.LastLogin = ""
	require.NoError(t, s.Save(user, "tok"))

	session, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, 1, validator.called)
}
