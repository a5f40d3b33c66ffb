package models

// Error kinds reported in APIError.Kind.
const (
	ErrKindInvalidRequest = "invalid_request"
	ErrKindUnauthorized   = "unauthorized"
	ErrKindNotFound       = "not_found"
	ErrKindConflict       = "conflict"
	ErrKindInternal       = "internal"
)

// APIError is the uniform error envelope returned on failure.
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
