package guard

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/permission"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/scope"
)

// Claims is the token payload the session layer signs for each actor.
// Role is a raw string; extraction normalizes it to canonical form so
// tokens minted against older role spellings keep working.
type Claims struct {
	Role       string   `json:"role"`
	TenantID   string   `json:"tenant_id,omitempty"`
	CountryIDs []string `json:"country_ids,omitempty"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned when a bearer token fails parsing,
// signature verification, or claim validation.
var ErrInvalidToken = errors.New("guard.invalid_token")

// ParseActor verifies an HS256 token and builds the actor it asserts.
func ParseActor(tokenString string, secret []byte) (scope.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return scope.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return scope.Actor{}, errors.Join(ErrInvalidToken, fmt.Errorf("subject: %w", err))
	}
	role, err := permission.NormalizeRole(claims.Role)
	if err != nil {
		return scope.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	actor := scope.Actor{
		UserID:     userID,
		Role:       role,
		CountryIDs: claims.CountryIDs,
	}
	if claims.TenantID != "" {
		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			return scope.Actor{}, errors.Join(ErrInvalidToken, fmt.Errorf("tenant_id: %w", err))
		}
		actor.TenantID = &tenantID
	}
	return actor, nil
}

// ActorMiddleware extracts the bearer token, verifies it, and stores
// the actor on the request context. Requests with no token or a bad
// token proceed actorless; RequireAuth downstream turns that into the
// 401. Keeping extraction and enforcement separate lets public routes
// share the same chain prefix.
func ActorMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := ParseActor(tokenString, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithActor(r.Context(), actor)
			ctx = permission.WithRole(ctx, actor.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
