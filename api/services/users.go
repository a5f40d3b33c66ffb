package services

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/rs/zerolog"

	"github.com/vox-platform/vox-auth-services/internal/authn"
	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

var userOrderColumns = []string{"uuid", "username", "firstname", "lastname", "created_at"}

// CreateUserService creates a new user with hashed password material.
func (s *AuthService) CreateUserService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req models.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "invalid request payload")
		return
	}
	if req.Username == "" {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "username is required")
		return
	}

	var hash, salt []byte
	if req.Password != "" {
		var err error
		salt, err = authn.NewSalt()
		if err != nil {
			logger.Error().Err(err).Msg("could not generate salt")
			WriteAPIError(w, http.StatusInternalServerError, models.ErrKindInternal, "internal error")
			return
		}
		hash = authn.HashPassword(req.Password, salt)
	}

	user, err := s.DB.CreateUser(req, hash, salt)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.UserCreated, map[string]string{
		"user_uuid": user.UUID.String(),
		"username":  user.Username,
	})

	location := path.Join(r.URL.Path, user.UUID.String())
	WriteResponse(w, http.StatusCreated, user, location)
}

// GetUserService retrieves a single user.
func (s *AuthService) GetUserService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	user, err := s.DB.GetUser(userUUID)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, user)
}

// DeleteUserService removes a user and its associations.
func (s *AuthService) DeleteUserService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	if err := s.DB.DeleteUser(userUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.UserDeleted, map[string]string{
		"user_uuid": userUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}

// GetUsersService lists users with pagination.
func (s *AuthService) GetUsersService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	params, err := ParseListParams(r, userOrderColumns, "username")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	users, err := s.DB.ListUsers(params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, users)
}

// GetUserGroupsService lists the groups a user belongs to with pagination.
func (s *AuthService) GetUserGroupsService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	params, err := ParseListParams(r, groupOrderColumns, "name")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	groups, err := s.DB.ListUserGroups(userUUID, params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, groups)
}
