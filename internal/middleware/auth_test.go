package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teachings-api/internal/model"
)

type fakeVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (f *fakeVerifier) Verify(string) (*model.AuthClaims, error) {
	return f.claims, f.err
}

type fakeDirectory struct {
	users map[string]model.UserSummary
}

func (f *fakeDirectory) GetUserByID(_ context.Context, id string) (model.UserSummary, error) {
	user, ok := f.users[id]
	if !ok {
		return model.UserSummary{}, model.ErrUserNotFound
	}
	return user, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	directory := &fakeDirectory{}

	t.Run("missing header", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeVerifier{claims: &model.AuthClaims{UserID: "u1"}}, directory)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()
		mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeVerifier{err: model.ErrTokenExpired}, directory)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeVerifier{claims: &model.AuthClaims{UserID: "u1"}}, directory)

		var seen *model.AuthClaims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			require.True(t, ok)
			seen = claims
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "u1", seen.UserID)
	})
}

func TestRequireRole(t *testing.T) {
	directory := &fakeDirectory{users: map[string]model.UserSummary{
		"admin-1":  {ID: "admin-1", Role: "admin"},
		"member-1": {ID: "member-1", Role: "member"},
	}}

	guarded := func(userID string) *httptest.ResponseRecorder {
		mw := NewAuthMiddleware(&fakeVerifier{claims: &model.AuthClaims{UserID: userID}}, directory)
		chain := mw.RequireAuth(mw.RequireRole("admin")(okHandler()))

		req := httptest.NewRequest("GET", "/api/v1/auth/users", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, guarded("admin-1").Code)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, guarded("member-1").Code)
	})

	t.Run("vanished subject is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, guarded("ghost").Code)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", BearerToken(req))
}
