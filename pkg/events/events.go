// Package events defines the designer session lifecycle events published to
// the event bus.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/jutt313/agentsflow/pkg/models"
)

type EventType string

// Topic carries all designer session events.
const Topic = "agentsflow.designer.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	SessionStartedEvent     EventType = "designer.session.started"
	StageAdvancedEvent      EventType = "designer.stage.advanced"
	BlueprintGeneratedEvent EventType = "designer.blueprint.generated"
	SessionCompletedEvent   EventType = "designer.session.completed"
	TurnFailedEvent         EventType = "designer.turn.failed"
	WebhookReceivedEvent    EventType = "designer.webhook.received"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type SessionStarted struct {
	BaseEvent

	DesignMode models.DesignMode `json:"design_mode"`
}

func (s SessionStarted) GetType() EventType {
	return SessionStartedEvent
}

type StageAdvanced struct {
	BaseEvent

	FromStage models.ConversationStage `json:"from_stage"`
	ToStage   models.ConversationStage `json:"to_stage"`
}

func (s StageAdvanced) GetType() EventType {
	return StageAdvancedEvent
}

type BlueprintGenerated struct {
	BaseEvent

	WorkflowID   string                 `json:"workflow_id"`
	WorkflowName string                 `json:"workflow_name"`
	Kind         models.BlueprintKind   `json:"kind"`
	Status       models.BlueprintStatus `json:"status"`
}

func (b BlueprintGenerated) GetType() EventType {
	return BlueprintGeneratedEvent
}

type SessionCompleted struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
	TurnCount  int    `json:"turn_count"`
}

func (s SessionCompleted) GetType() EventType {
	return SessionCompletedEvent
}

type TurnFailed struct {
	BaseEvent

	Stage models.ConversationStage `json:"stage"`
	Error string                   `json:"error"`
}

func (t TurnFailed) GetType() EventType {
	return TurnFailedEvent
}

// WebhookReceived records a verified external webhook delivery. The payload
// is not interpreted here; downstream consumers decide what to do with it.
type WebhookReceived struct {
	BaseEvent

	WebhookID   string `json:"webhook_id"`
	PayloadSize int    `json:"payload_size"`
}

func (w WebhookReceived) GetType() EventType {
	return WebhookReceivedEvent
}

func NewBaseEvent(eventType EventType, sessionID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Metadata:  make(map[string]any),
	}
}
