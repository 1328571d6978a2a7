package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/blueprint"
	"github.com/jutt313/agentsflow/pkg/designer"
	"github.com/jutt313/agentsflow/pkg/eventbus"
	"github.com/jutt313/agentsflow/pkg/events"
	"github.com/jutt313/agentsflow/pkg/models"
	"github.com/jutt313/agentsflow/pkg/otelhelper"
	"github.com/jutt313/agentsflow/pkg/persistence"
)

var (
	// ErrSessionNotFound is returned when a design session is not found.
	ErrSessionNotFound = persistence.ErrSessionNotFound

	// ErrBlueprintNotFound is returned when a blueprint is not found.
	ErrBlueprintNotFound = persistence.ErrBlueprintNotFound
)

// Designer orchestrates design sessions: it loads conversation state, runs
// one turn through the conversation manager, persists the result, and
// publishes lifecycle events. Callers must serialize turns per session.
type Designer struct {
	persistence persistence.Persistence
	client      ai.Client
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewDesigner creates a new designer service. The publisher may be nil, in
// which case lifecycle events are dropped.
func NewDesigner(store persistence.Persistence, client ai.Client, publisher eventbus.EventPublisher, logger *slog.Logger) *Designer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Designer{
		persistence: store,
		client:      client,
		publisher:   publisher,
		logger:      logger,
		tracer:      otel.Tracer("agentsflow.designer"),
	}
}

// HealthCheck checks the health of the persistence layer.
func (d *Designer) HealthCheck(ctx context.Context) (string, bool) {
	if d.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := d.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// CreateSessionResponse is the result of starting a new design session.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// CreateSession starts a new design session for a user and returns its id
// and greeting.
func (d *Designer) CreateSession(ctx context.Context, userID string) (*CreateSessionResponse, error) {
	if userID == "" {
		return nil, NewValidationError("CreateSession", "EMPTY_USER_ID", "user ID is required", ErrEmptyUserID)
	}

	sessionID := uuid.NewString()

	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "designer.create_session",
		attribute.String(otelhelper.SessionIDKey, sessionID),
		attribute.String(otelhelper.UserIDKey, userID))
	defer span.End()

	manager := designer.NewManager(d.client, d.logger, sessionID, userID)
	greeting := manager.InitializeConversation()

	if err := d.persistence.Sessions().SaveSession(ctx, manager.State()); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to save new session: %w", err)
	}

	d.publish(ctx, sessionID, events.SessionStarted{
		BaseEvent:  d.baseEvent(events.SessionStartedEvent, manager.State()),
		DesignMode: manager.State().DesignMode,
	})

	return &CreateSessionResponse{SessionID: sessionID, Greeting: greeting}, nil
}

// HandleMessageResponse is the result of processing one user turn.
type HandleMessageResponse struct {
	Response  string                   `json:"response"`
	Stage     models.ConversationStage `json:"stage"`
	Blueprint *models.Blueprint        `json:"blueprint,omitempty"`
}

// HandleMessage processes one user message against a stored session and
// persists the updated state before returning.
func (d *Designer) HandleMessage(ctx context.Context, sessionID, text string) (*HandleMessageResponse, error) {
	if text == "" {
		return nil, NewValidationError("HandleMessage", "EMPTY_MESSAGE", "message is required", ErrEmptyMessage)
	}

	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "designer.handle_message",
		attribute.String(otelhelper.SessionIDKey, sessionID))
	defer span.End()

	state, err := d.persistence.Sessions().SessionByID(ctx, sessionID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	manager := designer.NewManager(d.client, d.logger, state.SessionID, state.UserID)
	manager.Load(state)

	stageBefore := state.Stage
	blueprintBefore := blueprintFingerprint(state.Blueprint)

	response := manager.ProcessUserMessage(ctx, text)

	updated := manager.State()
	if err := d.persistence.Sessions().SaveSession(ctx, updated); err != nil {
		otelhelper.SetError(span, err, attribute.String(otelhelper.StageKey, string(updated.Stage)))

		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	span.SetAttributes(attribute.String(otelhelper.StageKey, string(updated.Stage)))

	if turnErr := manager.TurnError(); turnErr != nil {
		d.publish(ctx, updated.SessionID, events.TurnFailed{
			BaseEvent: d.baseEvent(events.TurnFailedEvent, updated),
			Stage:     updated.Stage,
			Error:     turnErr.Error(),
		})
	}

	d.publishTurnEvents(ctx, updated, stageBefore, blueprintBefore)

	return &HandleMessageResponse{
		Response:  response,
		Stage:     updated.Stage,
		Blueprint: updated.Blueprint,
	}, nil
}

// SaveCredentialReference records an opaque vault reference for a platform
// on a stored session.
func (d *Designer) SaveCredentialReference(ctx context.Context, sessionID, platform, reference string) error {
	if platform == "" || reference == "" {
		return NewValidationError("SaveCredentialReference", "INVALID_REQUEST", "platform and reference are required", ErrInvalidRequest)
	}

	state, err := d.persistence.Sessions().SessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	manager := designer.NewManager(d.client, d.logger, state.SessionID, state.UserID)
	manager.Load(state)
	manager.SetCredentialReference(platform, reference)

	if err := d.persistence.Sessions().SaveSession(ctx, manager.State()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession returns a stored session's full state.
func (d *Designer) GetSession(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	return d.persistence.Sessions().SessionByID(ctx, sessionID)
}

// ListSessions returns a user's sessions ordered by creation time.
func (d *Designer) ListSessions(ctx context.Context, userID string) ([]*models.ConversationState, error) {
	if userID == "" {
		return nil, NewValidationError("ListSessions", "EMPTY_USER_ID", "user ID is required", ErrEmptyUserID)
	}

	return d.persistence.Sessions().SessionsByUser(ctx, userID)
}

// GetSessionBlueprint returns the blueprint a session produced, or
// ErrBlueprintNotReady when the session has not reached that point.
func (d *Designer) GetSessionBlueprint(ctx context.Context, sessionID string) (*models.Blueprint, error) {
	state, err := d.persistence.Sessions().SessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if state.Blueprint == nil {
		return nil, ErrBlueprintNotReady
	}

	return state.Blueprint, nil
}

// GetBlueprint returns a stored blueprint by workflow id.
func (d *Designer) GetBlueprint(ctx context.Context, workflowID string) (*models.Blueprint, error) {
	return d.persistence.Blueprints().BlueprintByWorkflowID(ctx, workflowID)
}

// ValidateBlueprint runs structural and schema validation over a blueprint
// and merges both reports.
func (d *Designer) ValidateBlueprint(bp *models.Blueprint) (blueprint.Report, error) {
	structural := blueprint.Validate(bp)

	schema, err := blueprint.ValidateSchema(bp)
	if err != nil {
		return blueprint.Report{}, fmt.Errorf("schema validation failed: %w", err)
	}

	merged := blueprint.Report{
		IsValid: structural.IsValid && schema.IsValid,
		Errors:  append(structural.Errors, schema.Errors...),
	}

	return merged, nil
}

func blueprintWorkflowID(bp *models.Blueprint) string {
	if bp == nil {
		return ""
	}

	return bp.WorkflowID
}

// blueprintFingerprint identifies a blueprint version. Approval replaces the
// blueprint wholesale with the same workflow id but a new status, so the
// status must be part of the fingerprint.
func blueprintFingerprint(bp *models.Blueprint) string {
	if bp == nil {
		return ""
	}

	return bp.WorkflowID + "|" + string(bp.Status)
}

func (d *Designer) baseEvent(eventType events.EventType, state *models.ConversationState) events.BaseEvent {
	base := events.NewBaseEvent(eventType, state.SessionID)
	base.UserID = state.UserID

	return base
}

// publishTurnEvents emits stage, blueprint and completion events for a
// processed turn. Blueprints are also persisted to their own repository so
// they can be fetched independently of the session.
func (d *Designer) publishTurnEvents(ctx context.Context, state *models.ConversationState, stageBefore models.ConversationStage, blueprintBefore string) {
	if state.Stage != stageBefore {
		d.publish(ctx, state.SessionID, events.StageAdvanced{
			BaseEvent: d.baseEvent(events.StageAdvancedEvent, state),
			FromStage: stageBefore,
			ToStage:   state.Stage,
		})
	}

	if state.Blueprint != nil && blueprintFingerprint(state.Blueprint) != blueprintBefore {
		if err := d.persistence.Blueprints().SaveBlueprint(ctx, state.Blueprint); err != nil {
			d.logger.Error("failed to save generated blueprint",
				"session_id", state.SessionID,
				"workflow_id", state.Blueprint.WorkflowID,
				"error", err)
		}

		d.publish(ctx, state.SessionID, events.BlueprintGenerated{
			BaseEvent:    d.baseEvent(events.BlueprintGeneratedEvent, state),
			WorkflowID:   state.Blueprint.WorkflowID,
			WorkflowName: state.Blueprint.WorkflowName,
			Kind:         state.Blueprint.Kind,
			Status:       state.Blueprint.Status,
		})
	}

	if state.Stage == models.StageComplete && stageBefore != models.StageComplete {
		d.publish(ctx, state.SessionID, events.SessionCompleted{
			BaseEvent:  d.baseEvent(events.SessionCompletedEvent, state),
			WorkflowID: blueprintWorkflowID(state.Blueprint),
			TurnCount:  len(state.Messages),
		})
	}
}

// publish sends an event, logging failures instead of failing the turn.
// Events are advisory; the persisted state is the source of truth.
func (d *Designer) publish(ctx context.Context, key string, event eventbus.Event) {
	if d.publisher == nil {
		return
	}

	if err := d.publisher.Publish(ctx, key, event); err != nil {
		d.logger.Error("failed to publish designer event",
			"event_type", event.GetType(),
			"session_id", key,
			"error", err)
	}
}
