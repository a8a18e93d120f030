package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/minblog-go/apperror"
)

// stubVerifier is a canned CredentialVerifier for middleware tests.
type stubVerifier struct {
	user any
	err  error

	gotUsername string
	gotPassword string
	calls       int
}

func (s *stubVerifier) VerifyCredentials(_ context.Context, username, password string) (any, error) {
	s.calls++
	s.gotUsername = username
	s.gotPassword = password
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

// gatedHandler records whether the gate let the request through and what user
// the context carried.
type gatedHandler struct {
	called  bool
	user    any
	hadUser bool
}

func (g *gatedHandler) ServeHTTP(_ http.ResponseWriter, r *http.Request) {
	g.called = true
	g.user, g.hadUser = UserFromContext(r.Context())
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestBasicAuth(t *testing.T) {
	t.Parallel()

	t.Run("missing header is rejected without detail", func(t *testing.T) {
		t.Parallel()
		verifier := &stubVerifier{}
		next := &gatedHandler{}
		rec := httptest.NewRecorder()

		BasicAuth(verifier)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, GenericCredentialsMessage, errorBody(t, rec))
		assert.False(t, next.called)
		assert.Zero(t, verifier.calls, "verifier must not run without credentials")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()
		next := &gatedHandler{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer not-basic")

		BasicAuth(&stubVerifier{})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("bad credentials reuse the generic message", func(t *testing.T) {
		t.Parallel()
		verifier := &stubVerifier{err: apperror.NewAuthError(GenericCredentialsMessage, nil)}
		next := &gatedHandler{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.SetBasicAuth("alice", "wrong")

		BasicAuth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, GenericCredentialsMessage, errorBody(t, rec))
		assert.Equal(t, "alice", verifier.gotUsername)
		assert.Equal(t, "wrong", verifier.gotPassword)
		assert.False(t, next.called)
	})

	t.Run("backend failure keeps its own status", func(t *testing.T) {
		t.Parallel()
		verifier := &stubVerifier{err: apperror.NewUnavailableError("failed to get user by username", nil)}
		next := &gatedHandler{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.SetBasicAuth("alice", "pw")

		BasicAuth(verifier)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("valid credentials attach the user and proceed", func(t *testing.T) {
		t.Parallel()
		type principal struct{ name string }
		verifier := &stubVerifier{user: principal{name: "alice"}}
		next := &gatedHandler{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.SetBasicAuth("alice", "pw")

		BasicAuth(verifier)(next).ServeHTTP(rec, req)

		require.True(t, next.called)
		require.True(t, next.hadUser)
		assert.Equal(t, principal{name: "alice"}, next.user)
	})
}
