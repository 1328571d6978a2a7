// Package persistence provides the storage abstraction for design sessions
// and generated blueprints. Both are persisted as opaque documents with
// load/replace semantics; there is no partial-update API.
package persistence

import (
	"context"

	"github.com/jutt313/agentsflow/pkg/models"
)

// SessionRepository stores full conversation states keyed by session id.
type SessionRepository interface {
	SaveSession(ctx context.Context, state *models.ConversationState) error
	SessionByID(ctx context.Context, id string) (*models.ConversationState, error)
	SessionsByUser(ctx context.Context, userID string) ([]*models.ConversationState, error)
	DeleteSession(ctx context.Context, id string) error
}

// BlueprintRepository stores generated blueprints keyed by workflow id.
type BlueprintRepository interface {
	SaveBlueprint(ctx context.Context, blueprint *models.Blueprint) error
	BlueprintByWorkflowID(ctx context.Context, workflowID string) (*models.Blueprint, error)
	BlueprintsByUser(ctx context.Context, userID string) ([]*models.Blueprint, error)
}

type Persistence interface {
	Sessions() SessionRepository
	Blueprints() BlueprintRepository
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
