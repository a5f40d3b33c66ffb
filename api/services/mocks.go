package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

// MockAuthStore is a testify mock of the Store interface.
type MockAuthStore struct {
	mock.Mock
}

func (m *MockAuthStore) CreateUser(req models.UserCreateRequest, hash, salt []byte) (*models.User, error) {
	args := m.Called(req, hash, salt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthStore) GetUser(userUUID uuid.UUID) (*models.User, error) {
	args := m.Called(userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthStore) DeleteUser(userUUID uuid.UUID) error {
	args := m.Called(userUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListUsers(p models.ListParams) (*models.UserList, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserList), args.Error(1)
}

func (m *MockAuthStore) GetUserCredentials(username string) (*models.UserCredentials, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserCredentials), args.Error(1)
}

func (m *MockAuthStore) ListUserGroups(userUUID uuid.UUID, p models.ListParams) (*models.GroupList, error) {
	args := m.Called(userUUID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupList), args.Error(1)
}

func (m *MockAuthStore) CreateGroup(name string) (*models.Group, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockAuthStore) GetGroup(groupUUID uuid.UUID) (*models.Group, error) {
	args := m.Called(groupUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockAuthStore) UpdateGroup(groupUUID uuid.UUID, name string) (*models.Group, error) {
	args := m.Called(groupUUID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockAuthStore) DeleteGroup(groupUUID uuid.UUID) error {
	args := m.Called(groupUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListGroups(p models.ListParams) (*models.GroupList, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupList), args.Error(1)
}

func (m *MockAuthStore) AddGroupUser(groupUUID, userUUID uuid.UUID) error {
	args := m.Called(groupUUID, userUUID)
	return args.Error(0)
}

func (m *MockAuthStore) RemoveGroupUser(groupUUID, userUUID uuid.UUID) error {
	args := m.Called(groupUUID, userUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListGroupUsers(groupUUID uuid.UUID, p models.ListParams) (*models.UserList, error) {
	args := m.Called(groupUUID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserList), args.Error(1)
}

func (m *MockAuthStore) CreatePolicy(req models.PolicyRequest) (*models.Policy, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Policy), args.Error(1)
}

func (m *MockAuthStore) GetPolicy(policyUUID uuid.UUID) (*models.Policy, error) {
	args := m.Called(policyUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Policy), args.Error(1)
}

func (m *MockAuthStore) DeletePolicy(policyUUID uuid.UUID) error {
	args := m.Called(policyUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListPolicies(p models.ListParams) (*models.PolicyList, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PolicyList), args.Error(1)
}

func (m *MockAuthStore) AddGroupPolicy(groupUUID, policyUUID uuid.UUID) error {
	args := m.Called(groupUUID, policyUUID)
	return args.Error(0)
}

func (m *MockAuthStore) RemoveGroupPolicy(groupUUID, policyUUID uuid.UUID) error {
	args := m.Called(groupUUID, policyUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListGroupPolicies(groupUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error) {
	args := m.Called(groupUUID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PolicyList), args.Error(1)
}

func (m *MockAuthStore) AddUserPolicy(userUUID, policyUUID uuid.UUID) error {
	args := m.Called(userUUID, policyUUID)
	return args.Error(0)
}

func (m *MockAuthStore) RemoveUserPolicy(userUUID, policyUUID uuid.UUID) error {
	args := m.Called(userUUID, policyUUID)
	return args.Error(0)
}

func (m *MockAuthStore) ListUserPolicies(userUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error) {
	args := m.Called(userUUID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PolicyList), args.Error(1)
}

func (m *MockAuthStore) GetUserACL(userUUID uuid.UUID) ([]string, error) {
	args := m.Called(userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthStore) CreateSession(userUUID uuid.UUID, issuedAt, expiresAt time.Time) (*models.Session, error) {
	args := m.Called(userUUID, issuedAt, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthStore) GetSession(sessionUUID uuid.UUID) (*models.Session, error) {
	args := m.Called(sessionUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthStore) DeleteSession(sessionUUID uuid.UUID) error {
	args := m.Called(sessionUUID)
	return args.Error(0)
}

func (m *MockAuthStore) DeleteExpiredSessions(now time.Time) ([]models.Session, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

// MockNotifier is a testify mock of the events.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockNotifier) Close() {
	m.Called()
}
