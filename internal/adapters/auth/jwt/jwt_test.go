package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/ports/auth"
)

func TestIssueVerify(t *testing.T) {
	m, err := NewManager("s3cret", time.Hour)
	require.NoError(t, err)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	tok, exp, err := m.Issue(auth.Claims{UserID: "u1", Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	c, err := m.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.c", Role: "admin"}, c)

	now = now.Add(2 * time.Hour)
	_, err = m.Verify(context.Background(), tok)
	assert.True(t, errors.Is(err, ErrInvalidToken), "expired")
}

func TestVerify_Rejects(t *testing.T) {
	m, err := NewManager("s3cret", 0)
	require.NoError(t, err)
	other, err := NewManager("other", 0)
	require.NoError(t, err)

	tok, _, err := other.Issue(auth.Claims{UserID: "u1", Role: "admin"})
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), tok)
	assert.True(t, errors.Is(err, ErrInvalidToken), "wrong key")

	none := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims{RegisteredClaims: jwtlib.RegisteredClaims{Subject: "u1", Issuer: issuer}})
	unsigned, err := none.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(context.Background(), unsigned)
	assert.True(t, errors.Is(err, ErrInvalidToken), "alg none")

	_, err = m.Verify(context.Background(), "garbage")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = NewManager(" ", time.Hour)
	assert.True(t, errors.Is(err, ErrNoSecret))
}
