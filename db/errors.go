package db

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrPolicyNotFound  = errors.New("policy not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateName   = errors.New("name already in use")
)

const (
	pgUniqueViolation = "23505"
	pgFKeyViolation   = "23503"
)

// constraintErrors maps foreign key constraint names to the entity that was
// missing when the constraint fired.
var constraintErrors = map[string]error{
	"auth_user_group_user_uuid_fkey":     ErrUserNotFound,
	"auth_user_group_group_uuid_fkey":    ErrGroupNotFound,
	"auth_user_policy_user_uuid_fkey":    ErrUserNotFound,
	"auth_user_policy_policy_uuid_fkey":  ErrPolicyNotFound,
	"auth_group_policy_group_uuid_fkey":  ErrGroupNotFound,
	"auth_group_policy_policy_uuid_fkey": ErrPolicyNotFound,
	"auth_session_user_uuid_fkey":        ErrUserNotFound,
}

// associationError translates a Postgres integrity error raised while
// inserting an association row. A unique violation means the association
// already exists and is reported as nil so that PUT stays idempotent; a
// foreign key violation names the missing entity.
func associationError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		return nil
	case pgFKeyViolation:
		if mapped, ok := constraintErrors[pqErr.Constraint]; ok {
			return mapped
		}
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
