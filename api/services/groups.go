package services

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/rs/zerolog"

	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

var groupOrderColumns = []string{"uuid", "name", "created_at"}

// CreateGroupService creates a new group.
func (s *AuthService) CreateGroupService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req models.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "name is required")
		return
	}

	group, err := s.DB.CreateGroup(req.Name)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.GroupCreated, map[string]string{
		"group_uuid": group.UUID.String(),
		"name":       group.Name,
	})

	location := path.Join(r.URL.Path, group.UUID.String())
	WriteResponse(w, http.StatusCreated, group, location)
}

// GetGroupService retrieves a single group.
func (s *AuthService) GetGroupService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}

	group, err := s.DB.GetGroup(groupUUID)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, group)
}

// UpdateGroupService renames a group.
func (s *AuthService) UpdateGroupService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}

	var req models.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "invalid request payload")
		return
	}
	if req.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, "name is required")
		return
	}

	group, err := s.DB.UpdateGroup(groupUUID, req.Name)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.GroupUpdated, map[string]string{
		"group_uuid": group.UUID.String(),
		"name":       group.Name,
	})
	WriteResponse(w, http.StatusOK, group)
}

// DeleteGroupService removes a group and its associations.
func (s *AuthService) DeleteGroupService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}

	if err := s.DB.DeleteGroup(groupUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.GroupDeleted, map[string]string{
		"group_uuid": groupUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}

// GetGroupsService lists groups with pagination.
func (s *AuthService) GetGroupsService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	params, err := ParseListParams(r, groupOrderColumns, "name")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	groups, err := s.DB.ListGroups(params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, groups)
}

// GetGroupUsersService lists the members of a group with pagination.
func (s *AuthService) GetGroupUsersService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}

	params, err := ParseListParams(r, userOrderColumns, "username")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, models.ErrKindInvalidRequest, err.Error())
		return
	}

	users, err := s.DB.ListGroupUsers(groupUUID, params)
	if err != nil {
		writeStoreError(w, logger, err)
		return
	}
	WriteResponse(w, http.StatusOK, users)
}

// AddGroupUserService adds a user to a group. The operation is idempotent:
// re-adding an existing member succeeds without side effects.
func (s *AuthService) AddGroupUserService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}
	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	if err := s.DB.AddGroupUser(groupUUID, userUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.UserGroupAssociated, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}

// RemoveGroupUserService removes a user from a group. Removing a membership
// that does not exist succeeds as long as both the group and the user do.
func (s *AuthService) RemoveGroupUserService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	groupUUID, ok := pathUUID(w, r, "group_uuid")
	if !ok {
		return
	}
	userUUID, ok := pathUUID(w, r, "user_uuid")
	if !ok {
		return
	}

	if err := s.DB.RemoveGroupUser(groupUUID, userUUID); err != nil {
		writeStoreError(w, logger, err)
		return
	}

	s.publish(events.UserGroupDissociated, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	WriteResponse(w, http.StatusNoContent, nil)
}
