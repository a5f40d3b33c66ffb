package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the revocable server-side record behind an issued token.
type Session struct {
	UUID      uuid.UUID `json:"uuid"`
	UserUUID  uuid.UUID `json:"user_uuid"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRequest is the payload accepted by POST /token. Expiration is in
// seconds; zero selects the configured default.
type TokenRequest struct {
	Expiration int `json:"expiration"`
}

// TokenResponse is returned by POST /token and GET /token/{token}.
type TokenResponse struct {
	Token       string    `json:"token,omitempty"`
	SessionUUID uuid.UUID `json:"session_uuid"`
	UserUUID    uuid.UUID `json:"user_uuid"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	ACL         []string  `json:"acl"`
}
