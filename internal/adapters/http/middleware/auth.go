package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"taskmanager-api/internal/adapters/http/dto"
	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/ports"
)

// identityKey is the context key for the authenticated caller's identity.
type identityKey struct{}

// WithIdentity returns a new context with the given identity stored in it.
func WithIdentity(ctx context.Context, id *ports.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the authenticated identity from the context.
// Returns nil if the request was not authenticated.
func IdentityFromContext(ctx context.Context) *ports.Identity {
	if id, ok := ctx.Value(identityKey{}).(*ports.Identity); ok {
		return id
	}
	return nil
}

// Authenticate returns middleware that requires a valid bearer token on every
// request it wraps. The verified identity is stored in the request context
// for downstream authorization and handlers. Requests without a token, or
// with one that fails verification, receive a 401 problem response.
func Authenticate(tokens ports.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				dto.WriteErrorResponse(w, r,
					fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized))
				return
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRoles returns middleware that allows the request through only when
// the authenticated identity holds at least one of the given roles. It must
// run after Authenticate; a request with no identity receives a 401, one
// lacking every listed role a 403.
//
// Authorization runs before any parameter validation or handler logic, so a
// caller without the role learns nothing about the resource it asked for.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if id == nil {
				dto.WriteErrorResponse(w, r,
					fmt.Errorf("no authenticated identity: %w", domain.ErrUnauthorized))
				return
			}
			if !id.HasRole(roles...) {
				dto.WriteErrorResponse(w, r,
					fmt.Errorf("insufficient role: %w", domain.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
