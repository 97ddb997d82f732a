// Package jwt emite y verifica tokens HS256 con los claims de la clínica.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"vet-clinic/internal/ports/auth"
)

var (
	ErrNoSecret     = errors.New("jwt secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

const issuer = "vet-clinic"

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// Manager implementa auth.TokenIssuer y auth.AuthVerifier con la misma clave.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ auth.TokenIssuer  = (*Manager)(nil)
	_ auth.AuthVerifier = (*Manager)(nil)
)

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(c auth.Claims) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims{
		Role:  c.Role,
		Email: c.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	var c claims
	t, err := jwtlib.ParseWithClaims(strings.TrimSpace(token), &c,
		func(*jwtlib.Token) (any, error) { return m.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid || c.Subject == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	return auth.Claims{UserID: c.Subject, Email: c.Email, Role: c.Role}, nil
}
