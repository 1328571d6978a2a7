// Package redis provides Redis-backed persistence for design sessions and
// blueprints. Documents are stored as JSON strings; per-user indexes are
// kept in sets so listing does not require a key scan.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/jutt313/agentsflow/pkg/models"
	"github.com/jutt313/agentsflow/pkg/persistence"
)

const (
	sessionKeyPrefix   = "agentsflow:session:"
	blueprintKeyPrefix = "agentsflow:blueprint:"
	userSessionsPrefix = "agentsflow:user:%s:sessions"
	userBlueprintsKey  = "agentsflow:user:%s:blueprints"
)

// Persistence implements the persistence.Persistence interface on Redis.
type Persistence struct {
	client        *redis.Client
	sessionRepo   *SessionRepository
	blueprintRepo *BlueprintRepository
}

// NewPersistence connects to Redis using a redis:// URL.
func NewPersistence(url string) (persistence.Persistence, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	return &Persistence{
		client:        client,
		sessionRepo:   &SessionRepository{client: client},
		blueprintRepo: &BlueprintRepository{client: client},
	}, nil
}

func (rp *Persistence) Sessions() persistence.SessionRepository {
	return rp.sessionRepo
}

func (rp *Persistence) Blueprints() persistence.BlueprintRepository {
	return rp.blueprintRepo
}

func (rp *Persistence) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

func (rp *Persistence) Close(_ context.Context) error {
	return rp.client.Close()
}

// SessionRepository stores conversation states under per-session keys.
type SessionRepository struct {
	client *redis.Client
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func userSessionsKey(userID string) string {
	return fmt.Sprintf(userSessionsPrefix, userID)
}

func (sr *SessionRepository) SaveSession(ctx context.Context, state *models.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return persistence.NewSessionError("SaveSession", state.SessionID, err)
	}

	pipe := sr.client.TxPipeline()
	pipe.Set(ctx, sessionKey(state.SessionID), data, 0)
	pipe.SAdd(ctx, userSessionsKey(state.UserID), state.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return persistence.NewSessionError("SaveSession", state.SessionID, err)
	}

	return nil
}

func (sr *SessionRepository) SessionByID(ctx context.Context, id string) (*models.ConversationState, error) {
	data, err := sr.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.NewSessionError("SessionByID", id, persistence.ErrSessionNotFound)
		}

		return nil, persistence.NewSessionError("SessionByID", id, err)
	}

	var state models.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, persistence.NewSessionError("SessionByID", id, err)
	}

	return &state, nil
}

func (sr *SessionRepository) SessionsByUser(ctx context.Context, userID string) ([]*models.ConversationState, error) {
	ids, err := sr.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}

	sessions := make([]*models.ConversationState, 0, len(ids))

	for _, id := range ids {
		state, err := sr.SessionByID(ctx, id)
		if err != nil {
			// The index can point at a deleted session; skip it.
			if persistence.IsSessionNotFound(err) {
				continue
			}

			return nil, err
		}

		sessions = append(sessions, state)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (sr *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	state, err := sr.SessionByID(ctx, id)
	if err != nil {
		return persistence.NewSessionError("DeleteSession", id, persistence.ErrSessionNotFound)
	}

	pipe := sr.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userSessionsKey(state.UserID), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return persistence.NewSessionError("DeleteSession", id, err)
	}

	return nil
}

// BlueprintRepository stores blueprints under per-workflow keys.
type BlueprintRepository struct {
	client *redis.Client
}

func blueprintKey(workflowID string) string {
	return blueprintKeyPrefix + workflowID
}

func userBlueprints(userID string) string {
	return fmt.Sprintf(userBlueprintsKey, userID)
}

func (br *BlueprintRepository) SaveBlueprint(ctx context.Context, blueprint *models.Blueprint) error {
	data, err := json.Marshal(blueprint)
	if err != nil {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, err)
	}

	pipe := br.client.TxPipeline()
	pipe.Set(ctx, blueprintKey(blueprint.WorkflowID), data, 0)
	pipe.SAdd(ctx, userBlueprints(blueprint.UserID), blueprint.WorkflowID)

	if _, err := pipe.Exec(ctx); err != nil {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, err)
	}

	return nil
}

func (br *BlueprintRepository) BlueprintByWorkflowID(ctx context.Context, workflowID string) (*models.Blueprint, error) {
	data, err := br.client.Get(ctx, blueprintKey(workflowID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.NewBlueprintError("BlueprintByWorkflowID", workflowID, persistence.ErrBlueprintNotFound)
		}

		return nil, persistence.NewBlueprintError("BlueprintByWorkflowID", workflowID, err)
	}

	var blueprint models.Blueprint
	if err := json.Unmarshal(data, &blueprint); err != nil {
		return nil, persistence.NewBlueprintError("BlueprintByWorkflowID", workflowID, err)
	}

	return &blueprint, nil
}

func (br *BlueprintRepository) BlueprintsByUser(ctx context.Context, userID string) ([]*models.Blueprint, error) {
	ids, err := br.client.SMembers(ctx, userBlueprints(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list blueprints for user %s: %w", userID, err)
	}

	blueprints := make([]*models.Blueprint, 0, len(ids))

	for _, id := range ids {
		blueprint, err := br.BlueprintByWorkflowID(ctx, id)
		if err != nil {
			if persistence.IsBlueprintNotFound(err) {
				continue
			}

			return nil, err
		}

		blueprints = append(blueprints, blueprint)
	}

	sort.Slice(blueprints, func(i, j int) bool {
		return blueprints[i].CreatedAt.Before(blueprints[j].CreatedAt)
	})

	return blueprints, nil
}
