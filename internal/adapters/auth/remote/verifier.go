// Package remote verifica tokens contra un proveedor de identidad externo por
// HTTP (introspección).
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/platform/httpclient"
	"vet-clinic/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrRejected      = errors.New("token rejected by identity provider")
	ErrUpstream      = errors.New("identity provider error")
)

const (
	defaultVerifyPath   = "/v1/tokens/verify"
	defaultAPIKeyHeader = "X-Api-Key"
)

type Config struct {
	BaseURL string
	APIKey  string

	// Vacíos => defaults.
	APIKeyHeader string
	VerifyPath   string

	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	http *httpclient.Client
	path string
}

var _ auth.AuthVerifier = (*Verifier)(nil)

func NewVerifier(cfg Config, opts ...httpclient.Option) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = defaultAPIKeyHeader
	}
	path := strings.TrimSpace(cfg.VerifyPath)
	if path == "" {
		path = defaultVerifyPath
	}

	opts = append([]httpclient.Option{httpclient.WithHeader(header, strings.TrimSpace(cfg.APIKey))}, opts...)
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout, opts...)
	if err != nil {
		return nil, fmt.Errorf("remote auth: %w", err)
	}
	return &Verifier{http: c, path: path}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.http == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out verifyResponse
	err := v.http.DoJSON(ctx, http.MethodPost, v.path,
		map[string]string{"Authorization": "Bearer " + token},
		verifyRequest{Token: token}, &out)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && se.Rejected() {
			return auth.Claims{}, ErrRejected
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	claims := auth.Claims{
		UserID: strings.TrimSpace(out.UserID),
		Email:  strings.TrimSpace(out.Email),
		Role:   strings.TrimSpace(out.Role),
	}
	if claims.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return claims, nil
}
