package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/auth_service/internal/models"
)

func testUser() models.TokenUser {
	return models.TokenUser{
		ID:    uuid.New(),
		Name:  "alice",
		Email: "alice@example.com",
		Role:  "admin",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-jwt-secret")
	user := testUser()

	tok, err := NewAccessToken(user, secret, time.Now().Add(15*time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, user, claims.User)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	user := testUser()

	tok, err := NewAccessToken(user, []byte("right-secret"), time.Now().Add(15*time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, []byte("wrong-secret"))
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	secret := []byte("test-jwt-secret")
	user := testUser()

	tok, err := NewAccessToken(user, secret, time.Now().Add(-1*time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshTokenCarriesSecret(t *testing.T) {
	secret := []byte("test-refresh-secret")
	user := testUser()

	sessionSecret, err := NewSecret()
	require.NoError(t, err)

	tok, err := NewRefreshToken(user, sessionSecret, secret, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, sessionSecret, claims.RefreshSecret)
	require.Equal(t, user, claims.User)
}

func TestNewSecret(t *testing.T) {
	a, err := NewSecret()
	require.NoError(t, err)
	b, err := NewSecret()
	require.NoError(t, err)

	require.Len(t, a, secretBytes*2)
	require.NotEqual(t, a, b)
}

func TestCookies(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	ck := CreateCookie(AccessCookieName, "value", "/", exp)
	require.Equal(t, AccessCookieName, ck.Name)
	require.True(t, ck.HttpOnly)
	require.True(t, ck.Secure)
	require.WithinDuration(t, exp, ck.Expires, time.Second)

	del := DeleteCookie(RefreshCookieName, "/")
	require.Equal(t, -1, del.MaxAge)
	require.True(t, del.Expires.Before(time.Now()))
}
