package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vox-platform/vox-auth-services/models"
)

// CreateSession records the server-side session behind an issued token.
func (d *AuthDB) CreateSession(userUUID uuid.UUID, issuedAt, expiresAt time.Time) (*models.Session, error) {
	session := models.Session{
		UUID:      uuid.New(),
		UserUUID:  userUUID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	_, err := d.DB.Exec(`
		INSERT INTO auth_session (uuid, user_uuid, issued_at, expires_at) VALUES ($1, $2, $3, $4)`,
		session.UUID, session.UserUUID, session.IssuedAt, session.ExpiresAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgFKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error inserting session: %w", err)
	}

	return &session, nil
}

// GetSession retrieves a session by uuid.
func (d *AuthDB) GetSession(sessionUUID uuid.UUID) (*models.Session, error) {
	row := d.DB.QueryRow(`
		SELECT uuid, user_uuid, issued_at, expires_at FROM auth_session WHERE uuid = $1`, sessionUUID)

	var s models.Session
	if err := row.Scan(&s.UUID, &s.UserUUID, &s.IssuedAt, &s.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error scanning session: %w", err)
	}
	return &s, nil
}

// DeleteSession revokes a session.
func (d *AuthDB) DeleteSession(sessionUUID uuid.UUID) error {
	res, err := d.DB.Exec(`DELETE FROM auth_session WHERE uuid = $1`, sessionUUID)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns them
// so that session_deleted events can be published.
func (d *AuthDB) DeleteExpiredSessions(now time.Time) ([]models.Session, error) {
	rows, err := d.DB.Query(`
		DELETE FROM auth_session WHERE expires_at < $1
		RETURNING uuid, user_uuid, issued_at, expires_at`, now)
	if err != nil {
		return nil, fmt.Errorf("error deleting expired sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.UUID, &s.UserUUID, &s.IssuedAt, &s.ExpiresAt); err != nil {
			return nil, fmt.Errorf("error scanning expired session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
