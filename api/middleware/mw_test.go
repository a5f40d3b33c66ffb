package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/vox-platform/vox-auth-services/internal/authn"
	"github.com/vox-platform/vox-auth-services/models"
)

var testSecret = []byte("test-secret")

type stubSessionChecker struct {
	session *models.Session
	err     error
}

func (s *stubSessionChecker) GetSession(sessionUUID uuid.UUID) (*models.Session, error) {
	return s.session, s.err
}

func newSignedToken(t *testing.T, session *models.Session, acl []string) string {
	t.Helper()
	token, err := authn.SignToken(authn.Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        session.UUID.String(),
			Subject:   session.UserUUID.String(),
			IssuedAt:  session.IssuedAt.Unix(),
			ExpiresAt: session.ExpiresAt.Unix(),
		},
		Username: "alice",
		UserUUID: session.UserUUID.String(),
		ACL:      acl,
	}, testSecret)
	assert.NoError(t, err)
	return token
}

func newTestSession(ttl time.Duration) *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		UUID:      uuid.New(),
		UserUUID:  uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenMiddlewareMissingHeader(t *testing.T) {
	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareBadFormat(t *testing.T) {
	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareInvalidToken(t *testing.T) {
	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareWrongSecret(t *testing.T) {
	session := newTestSession(time.Hour)
	token, err := authn.SignToken(authn.Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        session.UUID.String(),
			ExpiresAt: session.ExpiresAt.Unix(),
		},
	}, []byte("other-secret"))
	assert.NoError(t, err)

	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{session: session})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareRevokedSession(t *testing.T) {
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, nil)

	called := false
	checker := &stubSessionChecker{err: errors.New("session not found")}
	handler := TokenMiddleware(testSecret, checker)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareNilSession(t *testing.T) {
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, nil)

	called := false
	checker := &stubSessionChecker{session: nil, err: nil}
	handler := TokenMiddleware(testSecret, checker)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestTokenMiddlewareValidToken(t *testing.T) {
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, []string{"auth.groups.read"})

	var gotClaims authn.Claims
	handler := TokenMiddleware(testSecret, &stubSessionChecker{session: session})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ClaimsKey).(authn.Claims)
			assert.True(t, ok)
			gotClaims = claims
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", gotClaims.Username)
	assert.Equal(t, session.UUID.String(), gotClaims.Id)
}

func TestRequireACLAllowed(t *testing.T) {
	groupUUID := uuid.New()
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, []string{"auth.groups.*.users.read"})

	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{session: session})(
		RequireACL("auth.groups.{group_uuid}.users.read")(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/groups/"+groupUUID.String()+"/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireACLDenied(t *testing.T) {
	groupUUID := uuid.New()
	otherGroup := uuid.New()
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, []string{"auth.groups." + otherGroup.String() + ".users.read"})

	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{session: session})(
		RequireACL("auth.groups.{group_uuid}.users.read")(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/groups/"+groupUUID.String()+"/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireACLDenialWins(t *testing.T) {
	groupUUID := uuid.New()
	session := newTestSession(time.Hour)
	token := newSignedToken(t, session, []string{
		"auth.groups.#",
		"!auth.groups." + groupUUID.String() + ".users.read",
	})

	called := false
	handler := TokenMiddleware(testSecret, &stubSessionChecker{session: session})(
		RequireACL("auth.groups.{group_uuid}.users.read")(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/groups/"+groupUUID.String()+"/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireACLWithoutClaims(t *testing.T) {
	called := false
	handler := RequireACL("auth.groups.read")(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
