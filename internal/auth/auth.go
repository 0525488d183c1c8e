// Package auth verifies bearer tokens and answers the two questions the
// mutating operations ask: who is calling, and do they hold the admin claim.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iconnecthq/iconnect/internal/fault"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

// Claims is the token payload. Admin mirrors the custom claim set by
// `iconnectctl set-admin`.
type Claims struct {
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithLeeway(30*time.Second),
		),
	}
}

// Verify parses and validates a token string and returns the caller identity.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	var claims Claims

	token, err := v.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fault.New(fault.Unauthenticated, "invalid token")
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, fault.New(fault.Unauthenticated, "subject claim missing")
	}

	return Identity{
		UID:   claims.Subject,
		Email: claims.Email,
		Admin: claims.Admin,
	}, nil
}

// Middleware extracts the bearer token, verifies it, and stores the caller
// identity in the request context. Requests without a usable token proceed
// anonymously; the per-operation guards decide whether that is acceptable.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}

	return token, true
}

// WithIdentity stores a verified identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext returns the verified identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// RequireUser returns the caller identity or Unauthenticated.
func RequireUser(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, fault.New(fault.Unauthenticated, "You must be logged in.")
	}

	return id, nil
}

// RequireAdmin returns the caller identity or PermissionDenied. The message
// deliberately carries no detail about what was missing.
func RequireAdmin(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || !id.Admin {
		return Identity{}, fault.New(fault.PermissionDenied, "Must be an administrative user.")
	}

	return id, nil
}

// MintToken signs a token for the given identity. Used by iconnectctl to
// issue development and operator tokens.
func MintToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: id.Email,
		Admin: id.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
