package db

import (
	"fmt"
	"time"
)

// InsertEventLog appends a received auth event to the audit log.
func (d *AuthDB) InsertEventLog(name string, payload []byte, occurredAt time.Time) error {
	_, err := d.DB.Exec(`
		INSERT INTO auth_event_log (name, payload, occurred_at) VALUES ($1, $2, $3)`,
		name, payload, occurredAt)
	if err != nil {
		return fmt.Errorf("error inserting event log: %w", err)
	}
	return nil
}
