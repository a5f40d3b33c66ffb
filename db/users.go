package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vox-platform/vox-auth-services/models"
)

var userColumns = map[string]string{
	"uuid":       "u.uuid",
	"username":   "u.username",
	"firstname":  "u.firstname",
	"lastname":   "u.lastname",
	"created_at": "u.created_at",
}

const userSelect = `SELECT u.uuid, u.username, COALESCE(u.firstname, ''), COALESCE(u.lastname, ''), COALESCE(u.email_address, ''), u.created_at FROM auth_user u`

const userSearchFilter = `(u.username ILIKE %[1]s OR u.firstname ILIKE %[1]s OR u.lastname ILIKE %[1]s OR u.email_address ILIKE %[1]s)`

// CreateUser inserts a new user with the given password material.
func (d *AuthDB) CreateUser(req models.UserCreateRequest, hash, salt []byte) (*models.User, error) {
	user := models.User{
		UUID:         uuid.New(),
		Username:     req.Username,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		EmailAddress: req.EmailAddress,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := d.DB.Exec(`
		INSERT INTO auth_user (uuid, username, firstname, lastname, email_address, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.UUID, user.Username, user.Firstname, user.Lastname, user.EmailAddress, hash, salt, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return &user, nil
}

// GetUser retrieves a single user by uuid.
func (d *AuthDB) GetUser(userUUID uuid.UUID) (*models.User, error) {
	row := d.DB.QueryRow(userSelect+` WHERE u.uuid = $1`, userUUID)

	var u models.User
	if err := row.Scan(&u.UUID, &u.Username, &u.Firstname, &u.Lastname, &u.EmailAddress, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// DeleteUser removes a user; group and policy associations cascade.
func (d *AuthDB) DeleteUser(userUUID uuid.UUID) error {
	res, err := d.DB.Exec(`DELETE FROM auth_user WHERE uuid = $1`, userUUID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListUsers returns a page of users plus total and filtered counts.
func (d *AuthDB) ListUsers(p models.ListParams) (*models.UserList, error) {
	result := models.UserList{Items: []models.User{}}

	if err := d.DB.QueryRow(`SELECT COUNT(*) FROM auth_user`).Scan(&result.Total); err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}

	where := ""
	args := []interface{}{}
	if p.Search != "" {
		where = ` WHERE ` + fmt.Sprintf(userSearchFilter, "$1")
		args = append(args, searchPattern(p.Search))
	}

	if err := d.DB.QueryRow(`SELECT COUNT(*) FROM auth_user u`+where, args...).Scan(&result.Filtered); err != nil {
		return nil, fmt.Errorf("error counting filtered users: %w", err)
	}

	query := userSelect + where + orderClause(p, userColumns, "username", "u.uuid") + limitClause(p)
	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	if err := scanUsers(rows, &result.Items); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserCredentials returns the stored password material for a username.
func (d *AuthDB) GetUserCredentials(username string) (*models.UserCredentials, error) {
	row := d.DB.QueryRow(`
		SELECT uuid, username, COALESCE(password_hash, ''::bytea), COALESCE(password_salt, ''::bytea)
		FROM auth_user WHERE username = $1`, username)

	var creds models.UserCredentials
	if err := row.Scan(&creds.UserUUID, &creds.Username, &creds.PasswordHash, &creds.PasswordSalt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning credentials: %w", err)
	}
	return &creds, nil
}

// ListUserGroups returns a page of the groups a user belongs to.
func (d *AuthDB) ListUserGroups(userUUID uuid.UUID, p models.ListParams) (*models.GroupList, error) {
	if err := d.userExists(userUUID); err != nil {
		return nil, err
	}

	result := models.GroupList{Items: []models.Group{}}

	err := d.DB.QueryRow(`
		SELECT COUNT(*) FROM auth_user_group ug WHERE ug.user_uuid = $1`, userUUID).Scan(&result.Total)
	if err != nil {
		return nil, fmt.Errorf("error counting user groups: %w", err)
	}

	where := ` WHERE ug.user_uuid = $1`
	args := []interface{}{userUUID}
	if p.Search != "" {
		where += ` AND g.name ILIKE $2`
		args = append(args, searchPattern(p.Search))
	}

	err = d.DB.QueryRow(`
		SELECT COUNT(*) FROM auth_group g
		JOIN auth_user_group ug ON ug.group_uuid = g.uuid`+where, args...).Scan(&result.Filtered)
	if err != nil {
		return nil, fmt.Errorf("error counting filtered user groups: %w", err)
	}

	query := `
		SELECT g.uuid, g.name, g.created_at FROM auth_group g
		JOIN auth_user_group ug ON ug.group_uuid = g.uuid` +
		where + orderClause(p, groupColumns, "name", "g.uuid") + limitClause(p)
	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing user groups: %w", err)
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

func (d *AuthDB) userExists(userUUID uuid.UUID) error {
	var exists bool
	err := d.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM auth_user WHERE uuid = $1)`, userUUID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking user existence: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func scanUsers(rows *sql.Rows, items *[]models.User) error {
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UUID, &u.Username, &u.Firstname, &u.Lastname, &u.EmailAddress, &u.CreatedAt); err != nil {
			return fmt.Errorf("error scanning user: %w", err)
		}
		*items = append(*items, u)
	}
	return rows.Err()
}
