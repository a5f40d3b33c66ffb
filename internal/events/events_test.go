package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	occurred := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(Event{
		Name:       UserGroupAssociated,
		Data:       map[string]string{"group_uuid": "g", "user_uuid": "u"},
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	event, err := decodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, UserGroupAssociated, event.Name)
	assert.Equal(t, "g", event.Data["group_uuid"])
	assert.Equal(t, occurred, event.OccurredAt)
}

func TestDecodeEventStampsMissingTimestamp(t *testing.T) {
	event, err := decodeEvent([]byte(`{"name": "session_deleted"}`))
	require.NoError(t, err)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	_, err := decodeEvent([]byte(`not json`))
	assert.Error(t, err)
}

func TestDLQPolicyDefaults(t *testing.T) {
	policy := dlqPolicy("auth-events", "", 0)
	assert.Equal(t, "auth-events-dlq", policy.DeadLetterTopic)
	assert.Equal(t, uint32(defaultMaxDeliveries), policy.MaxDeliveries)

	policy = dlqPolicy("auth-events", "auth-events-failed", 5)
	assert.Equal(t, "auth-events-failed", policy.DeadLetterTopic)
	assert.Equal(t, uint32(5), policy.MaxDeliveries)
}
