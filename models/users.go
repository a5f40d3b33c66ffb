package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user known to the identity service.
type User struct {
	UUID         uuid.UUID `json:"uuid"`
	Username     string    `json:"username"`
	Firstname    string    `json:"firstname,omitempty"`
	Lastname     string    `json:"lastname,omitempty"`
	EmailAddress string    `json:"email_address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCreateRequest is the payload accepted by POST /users.
type UserCreateRequest struct {
	Username     string `json:"username"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// UserCredentials holds the stored password material for a username.
type UserCredentials struct {
	UserUUID     uuid.UUID
	Username     string
	PasswordHash []byte
	PasswordSalt []byte
}

// UserList is the paginated result of a user listing.
type UserList struct {
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
	Items    []User `json:"items"`
}
