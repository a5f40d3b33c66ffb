package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vox-platform/vox-auth-services/db"
	"github.com/vox-platform/vox-auth-services/internal/authn"
	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

func testCredentials(t *testing.T, username, password string) *models.UserCredentials {
	t.Helper()
	salt, err := authn.NewSalt()
	assert.NoError(t, err)
	return &models.UserCredentials{
		UserUUID:     uuid.New(),
		Username:     username,
		PasswordHash: authn.HashPassword(password, salt),
		PasswordSalt: salt,
	}
}

func signedTestToken(t *testing.T, svc *AuthService, session *models.Session, acl []string) string {
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
	}, []byte(svc.Config.Token.Secret))
	assert.NoError(t, err)
	return token
}

func TestCreateTokenService(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	creds := testCredentials(t, "alice", "s3cret")
	acl := []string{"auth.users.me.read", "auth.groups.*.users.read"}
	session := &models.Session{
		UUID:      uuid.New(),
		UserUUID:  creds.UserUUID,
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(2 * time.Hour),
	}

	mockDB.On("GetUserCredentials", "alice").Return(creds, nil)
	mockDB.On("GetUserACL", creds.UserUUID).Return(acl, nil)
	mockDB.On("CreateSession", creds.UserUUID, mock.Anything, mock.Anything).Return(session, nil)

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.SetBasicAuth("alice", "s3cret")
	rec := httptest.NewRecorder()

	svc.CreateTokenService(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.TokenResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, session.UUID, got.SessionUUID)
	assert.Equal(t, creds.UserUUID, got.UserUUID)
	assert.Equal(t, acl, got.ACL)

	claims, err := authn.ParseClaims(got.Token, []byte(svc.Config.Token.Secret))
	assert.NoError(t, err)
	assert.Equal(t, session.UUID.String(), claims.Id)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, acl, claims.ACL)

	mockDB.AssertExpectations(t)
}

func TestCreateTokenServiceWrongPassword(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	creds := testCredentials(t, "alice", "s3cret")
	mockDB.On("GetUserCredentials", "alice").Return(creds, nil)

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.SetBasicAuth("alice", "wrong")
	rec := httptest.NewRecorder()

	svc.CreateTokenService(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var apiErr models.APIError
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, models.ErrKindUnauthorized, apiErr.Kind)
	mockDB.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTokenServiceUnknownUser(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	mockDB.On("GetUserCredentials", "ghost").Return(nil, db.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.SetBasicAuth("ghost", "whatever")
	rec := httptest.NewRecorder()

	svc.CreateTokenService(rec, req)

	// Unknown usernames read the same as bad passwords.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTokenServiceNoCredentials(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	rec := httptest.NewRecorder()

	svc.CreateTokenService(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockDB.AssertNotCalled(t, "GetUserCredentials", mock.Anything)
}

func TestGetTokenService(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	session := &models.Session{
		UUID:      uuid.New(),
		UserUUID:  uuid.New(),
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	token := signedTestToken(t, svc, session, []string{"auth.users.me.read"})
	mockDB.On("GetSession", session.UUID).Return(session, nil)

	req := httptest.NewRequest(http.MethodGet, "/token/"+token, nil)
	req = mux.SetURLVars(req, map[string]string{"token": token})
	rec := httptest.NewRecorder()

	svc.GetTokenService(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.TokenResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, session.UUID, got.SessionUUID)
	assert.Empty(t, got.Token)
}

func TestGetTokenServiceRevokedSession(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	session := &models.Session{
		UUID:      uuid.New(),
		UserUUID:  uuid.New(),
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	token := signedTestToken(t, svc, session, nil)
	mockDB.On("GetSession", session.UUID).Return(nil, db.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/token/"+token, nil)
	req = mux.SetURLVars(req, map[string]string{"token": token})
	rec := httptest.NewRecorder()

	svc.GetTokenService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTokenServiceGarbageToken(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	req := httptest.NewRequest(http.MethodGet, "/token/garbage", nil)
	req = mux.SetURLVars(req, map[string]string{"token": "garbage"})
	rec := httptest.NewRecorder()

	svc.GetTokenService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockDB.AssertNotCalled(t, "GetSession", mock.Anything)
}

func TestCheckTokenServiceScope(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	session := &models.Session{
		UUID:      uuid.New(),
		UserUUID:  uuid.New(),
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	token := signedTestToken(t, svc, session, []string{"auth.groups.#"})
	mockDB.On("GetSession", session.UUID).Return(session, nil)

	tests := []struct {
		name  string
		scope string
		want  int
	}{
		{"no scope", "", http.StatusNoContent},
		{"granted scope", "auth.groups." + uuid.NewString() + ".users.read", http.StatusNoContent},
		{"denied scope", "auth.users." + uuid.NewString() + ".delete", http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := "/token/" + token
			if tc.scope != "" {
				target += "?scope=" + tc.scope
			}
			req := httptest.NewRequest(http.MethodHead, target, nil)
			req = mux.SetURLVars(req, map[string]string{"token": token})
			rec := httptest.NewRecorder()

			svc.CheckTokenService(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestDeleteTokenService(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	session := &models.Session{
		UUID:      uuid.New(),
		UserUUID:  uuid.New(),
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	token := signedTestToken(t, svc, session, nil)
	mockDB.On("GetSession", session.UUID).Return(session, nil)
	mockDB.On("DeleteSession", session.UUID).Return(nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.SessionDeleted && e.Data["session_uuid"] == session.UUID.String()
	})).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/token/"+token, nil)
	req = mux.SetURLVars(req, map[string]string{"token": token})
	rec := httptest.NewRecorder()

	svc.DeleteTokenService(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockDB.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestRemoveExpiredSessions(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	expired := []models.Session{
		{UUID: uuid.New(), UserUUID: uuid.New()},
		{UUID: uuid.New(), UserUUID: uuid.New()},
	}
	mockDB.On("DeleteExpiredSessions", mock.Anything).Return(expired, nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.SessionDeleted
	})).Return(nil).Times(2)

	logger := zerologTestLogger()
	svc.RemoveExpiredSessions(logger)

	mockDB.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}
