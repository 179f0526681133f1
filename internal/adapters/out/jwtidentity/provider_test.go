package jwtidentity

import (
	"context"
	"testing"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	signingKey = "test-signing-key"
	issuer     = "test-issuer"
)

var provider = NewProvider(signingKey, issuer)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(subject string, role string, expiresIn time.Duration) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func Test_Authenticate_EmptyCredentials(t *testing.T) {
	for _, credentials := range []string{"", "   ", "Bearer", "Bearer   "} {
		a, err := provider.Authenticate(context.Background(), credentials)

		require.NoError(t, err)
		assert.False(t, a.IsAuthenticated())
	}
}

func Test_Authenticate_ValidToken(t *testing.T) {
	id := kernel.NewUUID()
	roles := map[string]func(actor.Actor) bool{
		"customer": actor.Actor.IsCustomer,
		"courier":  actor.Actor.IsCourier,
		"admin":    actor.Actor.IsAdmin,
	}

	for role, is := range roles {
		t.Run(role, func(t *testing.T) {
			token := sign(t, jwt.SigningMethodHS256, []byte(signingKey), claimsFor(id.String(), role, time.Hour))

			a, err := provider.Authenticate(context.Background(), "Bearer "+token)

			require.NoError(t, err)
			assert.True(t, a.IsAuthenticated())
			assert.True(t, is(a))
			assert.True(t, a.ID().IsEqual(id))
		})
	}
}

func Test_Authenticate_RawToken(t *testing.T) {
	id := kernel.NewUUID()
	token := sign(t, jwt.SigningMethodHS512, []byte(signingKey), claimsFor(id.String(), "admin", time.Hour))

	a, err := provider.Authenticate(context.Background(), token)

	require.NoError(t, err)
	assert.True(t, a.IsAdmin())
}

func Test_Authenticate_ExpiredToken(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(signingKey), claimsFor(kernel.NewUUID().String(), "customer", -time.Hour))

	_, err := provider.Authenticate(context.Background(), "Bearer "+token)

	require.ErrorIs(t, err, ErrCredentialsExpired)
}

func Test_Authenticate_InvalidTokens(t *testing.T) {
	id := kernel.NewUUID().String()
	foreignIssuer := claimsFor(id, "customer", time.Hour)
	foreignIssuer.Issuer = "someone-else"

	testCases := map[string]string{
		"garbage":        "invalid-token-string",
		"wrong key":      sign(t, jwt.SigningMethodHS256, []byte("other-key"), claimsFor(id, "customer", time.Hour)),
		"unknown role":   sign(t, jwt.SigningMethodHS256, []byte(signingKey), claimsFor(id, "dispatcher", time.Hour)),
		"bad subject":    sign(t, jwt.SigningMethodHS256, []byte(signingKey), claimsFor("not-a-uuid", "customer", time.Hour)),
		"foreign issuer": sign(t, jwt.SigningMethodHS256, []byte(signingKey), foreignIssuer),
		"none algorithm": sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claimsFor(id, "admin", time.Hour)),
	}

	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			a, err := provider.Authenticate(context.Background(), "Bearer "+token)

			require.ErrorIs(t, err, ErrInvalidCredentials)
			assert.False(t, a.IsAuthenticated())
		})
	}
}
