package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/vox-platform/vox-auth-services/internal/appconfig"
	"github.com/vox-platform/vox-auth-services/internal/events"
	"github.com/vox-platform/vox-auth-services/models"
)

// Store is the persistence interface the services depend on. *db.AuthDB
// implements it; tests substitute MockAuthStore.
type Store interface {
	// users
	CreateUser(req models.UserCreateRequest, hash, salt []byte) (*models.User, error)
	GetUser(userUUID uuid.UUID) (*models.User, error)
	DeleteUser(userUUID uuid.UUID) error
	ListUsers(p models.ListParams) (*models.UserList, error)
	GetUserCredentials(username string) (*models.UserCredentials, error)
	ListUserGroups(userUUID uuid.UUID, p models.ListParams) (*models.GroupList, error)

	// groups
	CreateGroup(name string) (*models.Group, error)
	GetGroup(groupUUID uuid.UUID) (*models.Group, error)
	UpdateGroup(groupUUID uuid.UUID, name string) (*models.Group, error)
	DeleteGroup(groupUUID uuid.UUID) error
	ListGroups(p models.ListParams) (*models.GroupList, error)
	AddGroupUser(groupUUID, userUUID uuid.UUID) error
	RemoveGroupUser(groupUUID, userUUID uuid.UUID) error
	ListGroupUsers(groupUUID uuid.UUID, p models.ListParams) (*models.UserList, error)

	// policies
	CreatePolicy(req models.PolicyRequest) (*models.Policy, error)
	GetPolicy(policyUUID uuid.UUID) (*models.Policy, error)
	DeletePolicy(policyUUID uuid.UUID) error
	ListPolicies(p models.ListParams) (*models.PolicyList, error)
	AddGroupPolicy(groupUUID, policyUUID uuid.UUID) error
	RemoveGroupPolicy(groupUUID, policyUUID uuid.UUID) error
	ListGroupPolicies(groupUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error)
	AddUserPolicy(userUUID, policyUUID uuid.UUID) error
	RemoveUserPolicy(userUUID, policyUUID uuid.UUID) error
	ListUserPolicies(userUUID uuid.UUID, p models.ListParams) (*models.PolicyList, error)
	GetUserACL(userUUID uuid.UUID) ([]string, error)

	// sessions
	CreateSession(userUUID uuid.UUID, issuedAt, expiresAt time.Time) (*models.Session, error)
	GetSession(sessionUUID uuid.UUID) (*models.Session, error)
	DeleteSession(sessionUUID uuid.UUID) error
	DeleteExpiredSessions(now time.Time) ([]models.Session, error)
}

// AuthService contains all shared dependencies for handlers.
type AuthService struct {
	Config    *appconfig.Config
	DB        Store
	Publisher events.Notifier
}

// publish sends an event without failing the request: the database is the
// source of truth and the bus is best effort.
func (s *AuthService) publish(name string, data map[string]string) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(events.Event{Name: name, Data: data}); err != nil {
		logPublishFailure(name, err)
	}
}
