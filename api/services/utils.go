package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vox-platform/vox-auth-services/db"
	"github.com/vox-platform/vox-auth-services/models"
)

// WriteResponse writes a JSON response with the given status code.
func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {
	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most current data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// WriteAPIError writes the uniform error envelope.
func WriteAPIError(w http.ResponseWriter, statusCode int, kind, message string) {
	WriteResponse(w, statusCode, models.APIError{Kind: kind, Message: message})
}

// writeStoreError maps storage errors onto the HTTP error contract.
func writeStoreError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrGroupNotFound),
		errors.Is(err, db.ErrPolicyNotFound),
		errors.Is(err, db.ErrSessionNotFound):
		WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound, err.Error())
	case errors.Is(err, db.ErrDuplicateName):
		WriteAPIError(w, http.StatusConflict, models.ErrKindConflict, err.Error())
	default:
		logger.Error().Err(err).Msg("storage error")
		WriteAPIError(w, http.StatusInternalServerError, models.ErrKindInternal, "internal error")
	}
}

// ParseListParams extracts and validates order/direction/limit/offset/search
// query parameters. orderColumns lists the column names accepted for order.
func ParseListParams(r *http.Request, orderColumns []string, defaultOrder string) (models.ListParams, error) {
	q := r.URL.Query()
	p := models.ListParams{
		Order:     defaultOrder,
		Direction: "asc",
		Limit:     -1,
		Search:    q.Get("search"),
	}

	if order := q.Get("order"); order != "" {
		valid := false
		for _, col := range orderColumns {
			if order == col {
				valid = true
				break
			}
		}
		if !valid {
			return p, fmt.Errorf("invalid order column: %s", order)
		}
		p.Order = order
	}

	if direction := q.Get("direction"); direction != "" {
		direction = strings.ToLower(direction)
		if direction != "asc" && direction != "desc" {
			return p, fmt.Errorf("invalid direction: %s", direction)
		}
		p.Direction = direction
	}

	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid limit: %s", limit)
		}
		p.Limit = n
	}

	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid offset: %s", offset)
		}
		p.Offset = n
	}

	return p, nil
}

// pathUUID parses a uuid path variable. An unparseable value behaves like a
// resource that does not exist.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteAPIError(w, http.StatusNotFound, models.ErrKindNotFound,
			fmt.Sprintf("no resource with uuid %q", raw))
		return uuid.Nil, false
	}
	return id, true
}

func logPublishFailure(event string, err error) {
	log.Warn().Err(err).Str("event", event).Msg("failed to publish event")
}
