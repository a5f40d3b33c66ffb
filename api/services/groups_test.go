package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vox-platform/vox-auth-services/db"
	"github.com/vox-platform/vox-auth-services/internal/appconfig"
	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

func newTestService(store *MockAuthStore, notifier *MockNotifier) *AuthService {
	svc := &AuthService{
		Config: &appconfig.Config{
			Token: appconfig.TokenConfig{
				Secret: "test-secret",
				Expiry: appconfig.Duration(2 * time.Hour),
			},
		},
		DB: store,
	}
	if notifier != nil {
		svc.Publisher = notifier
	}
	return svc
}

func TestGetGroupUsersService(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	groupUUID := uuid.New()
	want := &models.UserList{
		Total:    2,
		Filtered: 1,
		Items: []models.User{
			{UUID: uuid.New(), Username: "alice"},
		},
	}
	mockDB.On("ListGroupUsers", groupUUID, models.ListParams{
		Order: "username", Direction: "desc", Limit: 10, Offset: 5, Search: "ali",
	}).Return(want, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/groups/"+groupUUID.String()+"/users?order=username&direction=desc&limit=10&offset=5&search=ali", nil)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()

	svc.GetGroupUsersService(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.UserList
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Filtered)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, "alice", got.Items[0].Username)

	mockDB.AssertExpectations(t)
}

func TestGetGroupUsersServiceUnknownGroup(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	groupUUID := uuid.New()
	mockDB.On("ListGroupUsers", groupUUID, mock.Anything).Return(nil, db.ErrGroupNotFound)

	req := httptest.NewRequest(http.MethodGet, "/groups/"+groupUUID.String()+"/users", nil)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()

	svc.GetGroupUsersService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr models.APIError
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, models.ErrKindNotFound, apiErr.Kind)
}

func TestGetGroupUsersServiceInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad order column", "?order=password"},
		{"bad direction", "?direction=sideways"},
		{"negative limit", "?limit=-1"},
		{"non-numeric offset", "?offset=abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDB := new(MockAuthStore)
			svc := newTestService(mockDB, nil)

			groupUUID := uuid.New()
			req := httptest.NewRequest(http.MethodGet, "/groups/"+groupUUID.String()+"/users"+tc.query, nil)
			req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
			rec := httptest.NewRecorder()

			svc.GetGroupUsersService(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var apiErr models.APIError
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
			assert.Equal(t, models.ErrKindInvalidRequest, apiErr.Kind)
			mockDB.AssertNotCalled(t, "ListGroupUsers", mock.Anything, mock.Anything)
		})
	}
}

func TestGetGroupUsersServiceMalformedUUID(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	req := httptest.NewRequest(http.MethodGet, "/groups/not-a-uuid/users", nil)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": "not-a-uuid"})
	rec := httptest.NewRecorder()

	svc.GetGroupUsersService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockDB.AssertNotCalled(t, "ListGroupUsers", mock.Anything, mock.Anything)
}

func TestAddGroupUserService(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	groupUUID := uuid.New()
	userUUID := uuid.New()
	mockDB.On("AddGroupUser", groupUUID, userUUID).Return(nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.UserGroupAssociated &&
			e.Data["group_uuid"] == groupUUID.String() &&
			e.Data["user_uuid"] == userUUID.String()
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPut,
		"/groups/"+groupUUID.String()+"/users/"+userUUID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	rec := httptest.NewRecorder()

	svc.AddGroupUserService(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockDB.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestAddGroupUserServiceUnknownUser(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	groupUUID := uuid.New()
	userUUID := uuid.New()
	mockDB.On("AddGroupUser", groupUUID, userUUID).Return(db.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodPut,
		"/groups/"+groupUUID.String()+"/users/"+userUUID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	rec := httptest.NewRecorder()

	svc.AddGroupUserService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockNotifier.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestRemoveGroupUserService(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	groupUUID := uuid.New()
	userUUID := uuid.New()
	mockDB.On("RemoveGroupUser", groupUUID, userUUID).Return(nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.UserGroupDissociated
	})).Return(nil)

	req := httptest.NewRequest(http.MethodDelete,
		"/groups/"+groupUUID.String()+"/users/"+userUUID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	rec := httptest.NewRecorder()

	svc.RemoveGroupUserService(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockDB.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestRemoveGroupUserServiceUnknownGroup(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	groupUUID := uuid.New()
	userUUID := uuid.New()
	mockDB.On("RemoveGroupUser", groupUUID, userUUID).Return(db.ErrGroupNotFound)

	req := httptest.NewRequest(http.MethodDelete,
		"/groups/"+groupUUID.String()+"/users/"+userUUID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{
		"group_uuid": groupUUID.String(),
		"user_uuid":  userUUID.String(),
	})
	rec := httptest.NewRecorder()

	svc.RemoveGroupUserService(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGroupService(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	group := &models.Group{UUID: uuid.New(), Name: "operators", CreatedAt: time.Now().UTC()}
	mockDB.On("CreateGroup", "operators").Return(group, nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.GroupCreated
	})).Return(nil)

	body, _ := json.Marshal(models.GroupRequest{Name: "operators"})
	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	svc.CreateGroupService(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/groups/"+group.UUID.String(), rec.Header().Get("Location"))

	var got models.Group
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, group.UUID, got.UUID)
	mockDB.AssertExpectations(t)
}

func TestCreateGroupServiceDuplicateName(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	mockDB.On("CreateGroup", "operators").Return(nil, db.ErrDuplicateName)

	body, _ := json.Marshal(models.GroupRequest{Name: "operators"})
	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	svc.CreateGroupService(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var apiErr models.APIError
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Equal(t, models.ErrKindConflict, apiErr.Kind)
}

func TestCreateGroupServiceMissingName(t *testing.T) {
	mockDB := new(MockAuthStore)
	svc := newTestService(mockDB, nil)

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	svc.CreateGroupService(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockDB.AssertNotCalled(t, "CreateGroup", mock.Anything)
}

func TestDeleteGroupService(t *testing.T) {
	mockDB := new(MockAuthStore)
	mockNotifier := new(MockNotifier)
	svc := newTestService(mockDB, mockNotifier)

	groupUUID := uuid.New()
	mockDB.On("DeleteGroup", groupUUID).Return(nil)
	mockNotifier.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Name == events.GroupDeleted
	})).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/groups/"+groupUUID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"group_uuid": groupUUID.String()})
	rec := httptest.NewRecorder()

	svc.DeleteGroupService(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockDB.AssertExpectations(t)
}
