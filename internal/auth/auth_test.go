package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
)

const testSecret = "test-secret"

func TestVerifier_Verify(t *testing.T) {
	verifier := auth.NewVerifier(testSecret)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := auth.MintToken(testSecret, auth.Identity{
			UID:   "user-1",
			Email: "jane@example.com",
			Admin: true,
		}, time.Hour)
		require.NoError(t, err)

		id, err := verifier.Verify(token)

		require.NoError(t, err)
		assert.Equal(t, "user-1", id.UID)
		assert.Equal(t, "jane@example.com", id.Email)
		assert.True(t, id.Admin)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := auth.MintToken("other-secret", auth.Identity{UID: "user-1"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.Unauthenticated))
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := auth.MintToken(testSecret, auth.Identity{UID: "user-1"}, -2*time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)

		require.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.Unauthenticated))
	})
}

func TestMiddleware(t *testing.T) {
	verifier := auth.NewVerifier(testSecret)

	handler := auth.Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("anonymous"))
			return
		}

		w.Write([]byte(id.UID))
	}))

	t.Run("ValidToken", func(t *testing.T) {
		token, err := auth.MintToken(testSecret, auth.Identity{UID: "user-42"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "user-42", rec.Body.String())
	})

	t.Run("NoHeaderIsAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("BadTokenIsAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "anonymous", rec.Body.String())
	})
}

func TestGuards(t *testing.T) {
	admin := auth.Identity{UID: "a", Admin: true}
	user := auth.Identity{UID: "u"}

	t.Run("RequireUser", func(t *testing.T) {
		_, err := auth.RequireUser(context.Background())
		assert.True(t, fault.IsKind(err, fault.Unauthenticated))

		id, err := auth.RequireUser(auth.WithIdentity(context.Background(), user))
		require.NoError(t, err)
		assert.Equal(t, "u", id.UID)
	})

	t.Run("RequireAdmin", func(t *testing.T) {
		_, err := auth.RequireAdmin(context.Background())
		assert.True(t, fault.IsKind(err, fault.PermissionDenied))

		_, err = auth.RequireAdmin(auth.WithIdentity(context.Background(), user))
		assert.True(t, fault.IsKind(err, fault.PermissionDenied))

		id, err := auth.RequireAdmin(auth.WithIdentity(context.Background(), admin))
		require.NoError(t, err)
		assert.Equal(t, "a", id.UID)
	})
}
