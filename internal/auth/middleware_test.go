package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OpsDesk-io/opsdesk/internal/models"
	"github.com/OpsDesk-io/opsdesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver serves users from a map, standing in for the store.
type fakeResolver struct {
	users map[int64]*models.User
}

func (f *fakeResolver) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func newAuthFixture(t *testing.T) (*TokenManager, *fakeResolver, http.Handler) {
	t.Helper()
	tm := NewTokenManager("test-secret", time.Hour)
	resolver := &fakeResolver{users: map[int64]*models.User{
		1: {ID: 1, Email: "admin@opsdesk.io", Role: models.RoleAdmin},
		2: {ID: 2, Email: "dev@opsdesk.io", Role: models.RoleUser},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		json.NewEncoder(w).Encode(identity)
	})
	return tm, resolver, Middleware(tm, resolver)(inner)
}

func doAuthRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareMissingHeader(t *testing.T) {
	_, _, handler := newAuthFixture(t)

	rec := doAuthRequest(handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing token")
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	tm, _, handler := newAuthFixture(t)

	token, err := tm.GenerateToken(&models.User{ID: 2, Role: models.RoleUser})
	require.NoError(t, err)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		rec := doAuthRequest(handler, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "invalid authorization header")
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	tm, _, handler := newAuthFixture(t)

	token, err := tm.GenerateToken(&models.User{ID: 2, Role: models.RoleUser})
	require.NoError(t, err)

	rec := doAuthRequest(handler, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var identity Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, int64(2), identity.UserID)
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestMiddlewareExpiredToken(t *testing.T) {
	_, _, handler := newAuthFixture(t)

	expired := NewTokenManager("test-secret", -time.Minute)
	token, err := expired.GenerateToken(&models.User{ID: 2, Role: models.RoleUser})
	require.NoError(t, err)

	rec := doAuthRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token expired", body["error"])
	assert.Equal(t, true, body["expired"])
}

func TestMiddlewareDeletedAccount(t *testing.T) {
	tm, _, handler := newAuthFixture(t)

	// Valid token for an id the resolver no longer knows.
	token, err := tm.GenerateToken(&models.User{ID: 99, Role: models.RoleUser})
	require.NoError(t, err)

	rec := doAuthRequest(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestMiddlewareRoleComesFromStore(t *testing.T) {
	tm, resolver, handler := newAuthFixture(t)

	// Token minted while the account was admin; the row has since been
	// downgraded.
	token, err := tm.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	resolver.users[1].Role = models.RoleUser

	rec := doAuthRequest(handler, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var identity Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestRequireAdmin(t *testing.T) {
	tm, _, _ := newAuthFixture(t)
	resolver := &fakeResolver{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, Role: models.RoleUser},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(tm, resolver)(RequireAdmin(inner))

	adminToken, err := tm.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	userToken, err := tm.GenerateToken(&models.User{ID: 2, Role: models.RoleUser})
	require.NoError(t, err)

	rec := doAuthRequest(handler, "Bearer "+adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doAuthRequest(handler, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin privileges required")
}
