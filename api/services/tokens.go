package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/vox-platform/vox-auth-services/db"
	"github.com/vox-platform/vox-auth-services/internal/authn"
	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

// CreateTokenService exchanges basic auth credentials for a signed token
// backed by a revocable session.
func (s *AuthService) CreateTokenService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	username, password, ok := r.BasicAuth()
	if !ok {
		WriteAPIError(w, http.StatusUnauthorized, models.ErrKindUnauthorized, "basic auth credentials required")
		return
	}

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "invalid request payload")
		return
	}
	if req.Expiration < 0 {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "expiration must not be negative")
		return
	}

	creds, err := s.DB.GetUserCredentials(username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			WriteAPIError(w, http.StatusUnauthorized, models.ErrKindUnauthorized, "wrong username or password")
			return
		}
		writeStoreError(w, logger, err)
		return
	}
	if !authn.VerifyPassword(password, creds.PasswordSalt, creds.PasswordHash) {
		logger.Debug().Str("username", username).Msg("password verification failed")
		WriteAPIError(w, http.StatusUnauthorized, models.ErrKindUnauthorized, "wrong username or password")
		return
	}

	expiry := time.Duration(s.Config.Token.Expiry)
	if req.Expiration > 0 {
		expiry = time.Duration(req.Expiration) * time.Second
	}
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(expiry)

	acl, err := s.DB.GetUserACL(creds.UserUUID)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	session, err := s.DB.CreateSession(creds.UserUUID, issuedAt, expiresAt)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	claims := authn.Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        session.UUID.String(),
			Subject:   creds.UserUUID.String(),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
		Username: creds.Username,
		UserUUID: creds.UserUUID.String(),
		ACL:      acl,
	}

	token, err := authn.SignToken(claims, []byte(s.Config.Token.Secret))
	if err != nil {
		logger.Error().Err(err).Msg("could not sign token")
		WriteAPIError(w, http.StatusInternalServerError, models.ErrKindInternal, "internal error")
		return
	}

	WriteResponse(w, http.StatusOK, models.TokenResponse{
		Token:       token,
		SessionUUID: session.UUID,
		UserUUID:    creds.UserUUID,
		IssuedAt:    issuedAt,
		ExpiresAt:   expiresAt,
		ACL:         acl,
	})
}

// GetTokenService returns the metadata behind a token if it is still valid.
func (s *AuthService) GetTokenService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	session, claims, ok := s.resolveToken(w, r, logger)
	if !ok {
		return
	}

	WriteResponse(w, http.StatusOK, models.TokenResponse{
		SessionUUID: session.UUID,
		UserUUID:    session.UserUUID,
		IssuedAt:    session.IssuedAt,
		ExpiresAt:   session.ExpiresAt,
		ACL:         claims.ACL,
	})
}

// CheckTokenService answers HEAD validity checks without a body. An optional
// scope query parameter additionally requires the token's ACL to grant it.
func (s *AuthService) CheckTokenService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	_, claims, ok := s.resolveToken(w, r, logger)
	if !ok {
		return
	}

	if scope := r.URL.Query().Get("scope"); scope != "" {
		if !authn.MatchACL(claims.ACL, scope, claims.UserUUID) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTokenService revokes the session behind a token.
func (s *AuthService) DeleteTokenService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	session, _, ok := s.resolveToken(w, r, logger)
	if !ok {
		return
	}

	if err := s.DB.DeleteSession(session.UUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.SessionDeleted, map[string]string{
		"session_uuid": session.UUID.String(),
		"user_uuid":    session.UserUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}

// resolveToken verifies the token path variable and loads its session. A
// token that fails verification or whose session is gone reads as not found.
func (s *AuthService) resolveToken(w http.ResponseWriter, r *http.Request, logger *zerolog.Logger) (*models.Session, authn.Claims, bool) {
	token := mux.Vars(r)["token"]

	claims, err := authn.ParseClaims(token, []byte(s.Config.Token.Secret))
	if err != nil {
		WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound, "no such token")
		return nil, claims, false
	}

	sessionUUID, err := uuid.Parse(claims.Id)
	if err != nil {
		WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound, "no such token")
		return nil, claims, false
	}

	session, err := s.DB.GetSession(sessionUUID)
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound, "no such token")
			return nil, claims, false
		}
		writeStoreError(w, logger, err)
		return nil, claims, false
	}
	if time.Now().After(session.ExpiresAt) {
		WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound, "no such token")
		return nil, claims, false
	}

	return session, claims, true
}

// RemoveExpiredSessions deletes sessions past their expiry and publishes a
// session_deleted event for each. It is called periodically by the server.
func (s *AuthService) RemoveExpiredSessions(logger *zerolog.Logger) {
	sessions, err := s.DB.DeleteExpiredSessions(time.Now().UTC())
	if err != nil {
		logger.Error().Err(err).Msg("could not remove expired sessions")
		return
	}
	if len(sessions) == 0 {
		return
	}

	logger.Info().Int("count", len(sessions)).Msg("removed expired sessions")
	for _, session := range sessions {
		s.publish(events.SessionDeleted, map[string]string{
			"session_uuid": session.UUID.String(),
			"user_uuid":    session.UserUUID.String(),
		})
	}
}
