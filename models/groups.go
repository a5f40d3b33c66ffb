package models

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a named collection of users.
type Group struct {
	UUID      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupRequest is the payload accepted by POST /groups and PUT /groups/{uuid}.
type GroupRequest struct {
	Name string `json:"name"`
}

// GroupList is the paginated result of a group listing.
type GroupList struct {
	Total    int     `json:"total"`
	Filtered int     `json:"filtered"`
	Items    []Group `json:"items"`
}
