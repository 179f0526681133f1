// Package jwtidentity resolves HMAC-signed bearer tokens into actors.
// Tokens are issued elsewhere; this package only verifies them.
package jwtidentity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidCredentials is returned for tokens that fail verification.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCredentialsExpired is returned for well-formed tokens past their expiry.
	ErrCredentialsExpired = errors.New("credentials have expired")
)

// Claims are the access token claims: the subject is the actor ID.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Provider struct {
	signingKey []byte
	issuer     string
}

// NewProvider verifies tokens signed with signingKey. A non-empty issuer is
// required to match the iss claim.
func NewProvider(signingKey string, issuer string) *Provider {
	return &Provider{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// Authenticate accepts either a raw token or an "Authorization" header value
// with the Bearer scheme. Empty credentials yield the anonymous actor.
func (p *Provider) Authenticate(_ context.Context, credentials string) (actor.Actor, error) {
	token := bearerToken(credentials)
	if token == "" {
		return actor.Anonymous(), nil
	}

	claims, err := p.validate(token)
	if err != nil {
		return actor.Anonymous(), err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Anonymous(), fmt.Errorf("%w: subject: %v", ErrInvalidCredentials, err)
	}

	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Anonymous(), fmt.Errorf("%w: role: %v", ErrInvalidCredentials, err)
	}

	a, err := actor.New(id, role)
	if err != nil {
		return actor.Anonymous(), fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return a, nil
}

func bearerToken(credentials string) string {
	const scheme = "bearer"

	token := strings.TrimSpace(credentials)
	if len(token) >= len(scheme) && strings.EqualFold(token[:len(scheme)], scheme) {
		rest := token[len(scheme):]
		if rest == "" || rest[0] == ' ' {
			return strings.TrimSpace(rest)
		}
	}
	return token
}

func (p *Provider) validate(token string) (*Claims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	})}
	if p.issuer != "" {
		options = append(options, jwt.WithIssuer(p.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return p.signingKey, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrCredentialsExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
