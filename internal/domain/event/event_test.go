package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadata/userhub/internal/domain/entity"
)

func TestNewUserCreated(t *testing.T) {
	ev := NewUserCreated("u-1", "ada@example.com", "Ada")

	assert.Equal(t, TypeUserCreated, ev.EventType)
	assert.Equal(t, "u-1", ev.AggregateID)
	assert.Equal(t, AggregateUser, ev.AggregateType)
	assert.NotEmpty(t, ev.EventID)

	created, err := time.Parse(time.RFC3339Nano, ev.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), created, time.Minute)

	other := NewUserCreated("u-1", "ada@example.com", "Ada")
	assert.NotEqual(t, ev.EventID, other.EventID)
}

func TestUserCreatedJSONShape(t *testing.T) {
	ev := NewUserCreated("u-1", "ada@example.com", "Ada")
	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, ev.EventID, m["eventId"])
	assert.Equal(t, "user.created", m["eventType"])
	assert.Equal(t, "u-1", m["aggregateId"])
	assert.Equal(t, "user", m["aggregateType"])
	assert.Equal(t, "ada@example.com", m["email"])
	assert.Equal(t, "Ada", m["name"])
}

func TestUserUpdatedJSONShape(t *testing.T) {
	changes := entity.Changes{
		"name": {Old: "Ada", New: "Ada Lovelace"},
	}
	ev := NewUserUpdated("u-1", changes)
	assert.Equal(t, TypeUserUpdated, ev.EventType)

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded UserUpdated
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, changes, decoded.Changes)
}

func TestHeader(t *testing.T) {
	ev := NewUserUpdated("u-1", entity.Changes{})
	h := ev.Header()
	assert.Equal(t, ev.EventID, h.EventID)
	assert.Equal(t, TypeUserUpdated, h.EventType)
}
