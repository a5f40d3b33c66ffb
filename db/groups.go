package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vox-platform/vox-auth-services/models"
)

var groupColumns = map[string]string{
	"uuid":       "g.uuid",
	"name":       "g.name",
	"created_at": "g.created_at",
}

// CreateGroup inserts a new group.
func (d *AuthDB) CreateGroup(name string) (*models.Group, error) {
	group := models.Group{
		UUID:      uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := d.DB.Exec(`
		INSERT INTO auth_group (uuid, name, created_at) VALUES ($1, $2, $3)`,
		group.UUID, group.Name, group.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error inserting group: %w", err)
	}

	return &group, nil
}

// GetGroup retrieves a single group by uuid.
func (d *AuthDB) GetGroup(groupUUID uuid.UUID) (*models.Group, error) {
	row := d.DB.QueryRow(`SELECT g.uuid, g.name, g.created_at FROM auth_group g WHERE g.uuid = $1`, groupUUID)

	var g models.Group
	if err := row.Scan(&g.UUID, &g.Name, &g.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("error scanning group: %w", err)
	}
	return &g, nil
}

// UpdateGroup renames a group.
func (d *AuthDB) UpdateGroup(groupUUID uuid.UUID, name string) (*models.Group, error) {
	res, err := d.DB.Exec(`UPDATE auth_group SET name = $1 WHERE uuid = $2`, name, groupUUID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error updating group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrGroupNotFound
	}
	return d.GetGroup(groupUUID)
}

// DeleteGroup removes a group; user and policy associations cascade.
func (d *AuthDB) DeleteGroup(groupUUID uuid.UUID) error {
	res, err := d.DB.Exec(`DELETE FROM auth_group WHERE uuid = $1`, groupUUID)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// ListGroups returns a page of groups plus total and filtered counts.
func (d *AuthDB) ListGroups(p models.ListParams) (*models.GroupList, error) {
	result := models.GroupList{Items: []models.Group{}}

	if err := d.DB.QueryRow(`SELECT COUNT(*) FROM auth_group`).Scan(&result.Total); err != nil {
		return nil, fmt.Errorf("error counting groups: %w", err)
	}

	where := ""
	args := []interface{}{}
	if p.Search != "" {
		where = ` WHERE g.name ILIKE $1`
		args = append(args, searchPattern(p.Search))
	}

	if err := d.DB.QueryRow(`SELECT COUNT(*) FROM auth_group g`+where, args...).Scan(&result.Filtered); err != nil {
		return nil, fmt.Errorf("error counting filtered groups: %w", err)
	}

	query := `SELECT g.uuid, g.name, g.created_at FROM auth_group g` +
		where + orderClause(p, groupColumns, "name", "g.uuid") + limitClause(p)
	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.UUID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		result.Items = append(result.Items, g)
	}
	return &result, rows.Err()
}

// AddGroupUser associates a user with a group. Re-asserting an existing
// association is a no-op.
func (d *AuthDB) AddGroupUser(groupUUID, userUUID uuid.UUID) error {
	_, err := d.DB.Exec(`
		INSERT INTO auth_user_group (user_uuid, group_uuid) VALUES ($1, $2)`,
		userUUID, groupUUID)
	if err != nil {
		if mapped := associationError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting user group association: %w", err)
	}
	return nil
}

// RemoveGroupUser removes a group-user association. Both entities must
// exist; removing an absent association is not an error.
func (d *AuthDB) RemoveGroupUser(groupUUID, userUUID uuid.UUID) error {
	if err := d.groupExists(groupUUID); err != nil {
		return err
	}
	if err := d.userExists(userUUID); err != nil {
		return err
	}

	_, err := d.DB.Exec(`
		DELETE FROM auth_user_group WHERE user_uuid = $1 AND group_uuid = $2`,
		userUUID, groupUUID)
	if err != nil {
		return fmt.Errorf("error deleting user group association: %w", err)
	}
	return nil
}

// ListGroupUsers returns a page of the users belonging to a group.
func (d *AuthDB) ListGroupUsers(groupUUID uuid.UUID, p models.ListParams) (*models.UserList, error) {
	if err := d.groupExists(groupUUID); err != nil {
		return nil, err
	}

	result := models.UserList{Items: []models.User{}}

	err := d.DB.QueryRow(`
		SELECT COUNT(*) FROM auth_user_group ug WHERE ug.group_uuid = $1`, groupUUID).Scan(&result.Total)
	if err != nil {
		return nil, fmt.Errorf("error counting group users: %w", err)
	}

	where := ` WHERE ug.group_uuid = $1`
	args := []interface{}{groupUUID}
	if p.Search != "" {
		where += ` AND ` + fmt.Sprintf(userSearchFilter, "$2")
		args = append(args, searchPattern(p.Search))
	}

	err = d.DB.QueryRow(`
		SELECT COUNT(*) FROM auth_user u
		JOIN auth_user_group ug ON ug.user_uuid = u.uuid`+where, args...).Scan(&result.Filtered)
	if err != nil {
		return nil, fmt.Errorf("error counting filtered group users: %w", err)
	}

	query := userSelect + ` JOIN auth_user_group ug ON ug.user_uuid = u.uuid` +
		where + orderClause(p, userColumns, "username", "u.uuid") + limitClause(p)
	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing group users: %w", err)
	}
	defer rows.Close()

	if err := scanUsers(rows, &result.Items); err != nil {
		return nil, err
	}
	return &result, nil
}

func (d *AuthDB) groupExists(groupUUID uuid.UUID) error {
	var exists bool
	err := d.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM auth_group WHERE uuid = $1)`, groupUUID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking group existence: %w", err)
	}
	if !exists {
		return ErrGroupNotFound
	}
	return nil
}
