package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/vitrine-next/internal/backend"
	"github.com/vitrine-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLoginDecodesSubject(t *testing.T) {
	f := newFixture(t)
	token := validToken(t, "maria")

	session, err := f.session.Login(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "maria", session.Name)
	assert.True(t, f.session.IsAuthenticated())
	assert.Equal(t, token, f.session.Token())

	stored, ok := f.storedToken(t)
	require.True(t, ok)
	assert.Equal(t, token, stored)
}

func TestSessionLoginWithoutSubjectUsesPlaceholder(t *testing.T) {
	f := newFixture(t)
	token := signToken(t, jwt.MapClaims{"role": "seller"})

	session, err := f.session.Login(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Vendedor", session.Name)
}

func TestSessionLoginUndecodableTokenIsNotRetained(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Login(context.Background(), "bad.token.value")
	require.ErrorIs(t, err, ErrTokenInvalid)
	assert.False(t, f.session.IsAuthenticated())
	assert.Nil(t, f.session.Current())
	_, ok := f.storedToken(t)
	assert.False(t, ok)
}

func TestSessionLoginExpiredTokenPurged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(context.Background(), "token", "stale"))
	expired := signToken(t, jwt.MapClaims{"sub": "joao", "exp": time.Now().Add(-time.Minute).Unix()})

	_, err := f.session.Login(context.Background(), expired)
	require.ErrorIs(t, err, ErrTokenInvalid)
	_, ok := f.storedToken(t)
	assert.False(t, ok)
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, "token", validToken(t, "ana")))
		f.session.Restore(ctx)
		require.True(t, f.session.IsAuthenticated())
		assert.Equal(t, "ana", f.session.Current().Name)
	})

	t.Run("corrupt token purged", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(ctx, "token", "not-a-jwt"))
		f.session.Restore(ctx)
		assert.False(t, f.session.IsAuthenticated())
		_, ok := f.storedToken(t)
		assert.False(t, ok)
	})

	t.Run("malformed json treated as absent", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.backend.Write(ctx, "token", []byte("{{")))
		f.session.Restore(ctx)
		assert.False(t, f.session.IsAuthenticated())
	})

	t.Run("nothing stored", func(t *testing.T) {
		f := newFixture(t)
		f.session.Restore(ctx)
		assert.False(t, f.session.IsAuthenticated())
	})
}

func TestSessionLogoutPurgesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.session.Login(ctx, validToken(t, "ana"))
	require.NoError(t, err)
	_, err = f.cart.AddOrIncrement(ctx, fakeProduct(1))
	require.NoError(t, err)

	require.NoError(t, f.session.Logout(ctx, true))

	assert.False(t, f.session.IsAuthenticated())
	assert.Empty(t, f.session.Token())
	_, ok := f.storedToken(t)
	assert.False(t, ok)
	assert.Empty(t, f.cart.Snapshot())
	assert.Empty(t, f.storedCart(t))
	assert.Equal(t, "/", f.signals.State().Navigate)
}

func TestSessionLogoutRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.session.Login(ctx, validToken(t, "ana"))
	require.NoError(t, err)
	_, err = f.cart.AddOrIncrement(ctx, fakeProduct(1))
	require.NoError(t, err)

	require.ErrorIs(t, f.session.Logout(ctx, false), ErrLogoutNotConfirmed)
	assert.True(t, f.session.IsAuthenticated())
	assert.Equal(t, 1, f.cart.ItemCount())
	assert.Empty(t, f.signals.State().Navigate)
}

func TestSessionAuthenticateErrorClassification(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		want    error
		message string
	}{
		{
			name:    "rejected with message",
			err:     &backend.StatusError{StatusCode: http.StatusUnauthorized, Message: "Senha incorreta"},
			want:    ErrInvalidCredentials,
			message: "Senha incorreta",
		},
		{
			name: "rejected without message",
			err:  &backend.StatusError{StatusCode: http.StatusForbidden},
			want: ErrInvalidCredentials,
		},
		{
			name: "unreachable",
			err:  fmt.Errorf("%w: dial tcp: connection refused", backend.ErrRequestFailed),
			want: ErrBackendUnreachable,
		},
		{
			name: "no token",
			err:  fmt.Errorf("%w: token missing", backend.ErrResponseInvalid),
			want: ErrLoginUnexpected,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.err = tc.err
			_, err := f.session.Authenticate(context.Background(), "ana", "pw")
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.message, BackendMessage(err))
			assert.False(t, f.session.IsAuthenticated())
		})
	}
}

func TestSessionAuthenticateSuccess(t *testing.T) {
	f := newFixture(t)
	f.auth.token = validToken(t, "carla")
	f.signals.SetLoginOpen(true)

	session, err := f.session.Authenticate(context.Background(), "  carla ", " pw ")
	require.NoError(t, err)
	assert.Equal(t, "carla", session.Name)
	assert.False(t, f.signals.State().LoginOpen)
}

func TestSessionAuthenticateRequiresCredentials(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Authenticate(context.Background(), " ", "pw")
	require.ErrorIs(t, err, ErrCredentialsRequired)
	assert.Zero(t, f.auth.calls)
}

func TestSessionSubscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	var names []string
	unsubscribe := f.session.Subscribe(func(s *models.Session) {
		if s == nil {
			names = append(names, "")
			return
		}
		names = append(names, s.Name)
	})
	defer unsubscribe()

	_, err := f.session.Login(ctx, validToken(t, "ana"))
	require.NoError(t, err)
	require.NoError(t, f.session.Logout(ctx, true))
	assert.Equal(t, []string{"ana", ""}, names)
}
