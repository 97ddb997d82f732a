package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, s.err
}

func captureActor(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) actor.Actor {
	t.Helper()
	var got actor.Actor
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = Actor(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAuthContext_DevHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "u-1")
	req.Header.Set(HeaderDebugRole, "doctor")

	got := captureActor(t, AuthContext(nil), req)
	if got.ID != "u-1" || got.Role != actor.RoleDoctor {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthContext_DevWithoutHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := captureActor(t, AuthContext(nil), req); !got.IsZero() {
		t.Fatalf("expected zero actor, got %+v", got)
	}
}

func TestAuthContext_Bearer(t *testing.T) {
	v := stubVerifier{claims: auth.Claims{UserID: "u-2", Role: "admin"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	got := captureActor(t, AuthContext(v), req)
	if got.ID != "u-2" || got.Role != actor.RoleAdmin {
		t.Fatalf("got %+v", got)
	}

	// Token inválido: sigue sin actor.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	if got := captureActor(t, AuthContext(v), req); !got.IsZero() {
		t.Fatalf("expected zero actor, got %+v", got)
	}

	// En modo verifier los headers de debug se ignoran.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderDebugUserID, "intruder")
	if got := captureActor(t, AuthContext(v), req); !got.IsZero() {
		t.Fatalf("debug headers must be ignored, got %+v", got)
	}
}
