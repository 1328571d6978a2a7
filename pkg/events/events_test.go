package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/models"
)

func TestNewBaseEvent(t *testing.T) {
	event := NewBaseEvent(SessionStartedEvent, "session-1")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, SessionStartedEvent, event.Type)
	assert.Equal(t, "session-1", event.SessionID)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotNil(t, event.Metadata)

	other := NewBaseEvent(SessionStartedEvent, "session-1")
	assert.NotEqual(t, event.ID, other.ID)
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, SessionStartedEvent, SessionStarted{}.GetType())
	assert.Equal(t, StageAdvancedEvent, StageAdvanced{}.GetType())
	assert.Equal(t, BlueprintGeneratedEvent, BlueprintGenerated{}.GetType())
	assert.Equal(t, SessionCompletedEvent, SessionCompleted{}.GetType())
	assert.Equal(t, TurnFailedEvent, TurnFailed{}.GetType())
}

func TestStageAdvancedSerialization(t *testing.T) {
	event := StageAdvanced{
		BaseEvent: NewBaseEvent(StageAdvancedEvent, "session-1"),
		FromStage: models.StageInitial,
		ToStage:   models.StageDiagramDraft,
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded StageAdvanced

	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, models.StageInitial, decoded.FromStage)
	assert.Equal(t, models.StageDiagramDraft, decoded.ToStage)
	assert.Equal(t, event.SessionID, decoded.SessionID)
}
