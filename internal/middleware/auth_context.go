package middleware

import (
	"context"
	"net/http"
	"strings"

	"vet-clinic/internal/domain/actor"
	"vet-clinic/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	HeaderDebugUserID = "X-Debug-User-ID"
	HeaderDebugRole   = "X-Debug-Role"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-User-ID + X-Debug-Role => setea claims.
// - Si no hay claims, el request sigue igual; el caso de uso rechaza al actor vacío.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar user sin verifier
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID)); uid != "" {
					claims := auth.Claims{
						UserID: uid,
						Role:   strings.TrimSpace(r.Header.Get(HeaderDebugRole)),
					}
					ctx := context.WithValue(r.Context(), claimsKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			// Verifier mode
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí; sin claims el caso de uso responde 401.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// Actor devuelve el actor del request; vacío si no hay claims.
func Actor(r *http.Request) actor.Actor {
	c, ok := GetClaims(r.Context())
	if !ok {
		return actor.Actor{}
	}
	return c.Actor()
}

// WithClaims es útil en tests de handlers.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
