package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jutt313/agentsflow/pkg/models"
	"github.com/jutt313/agentsflow/pkg/persistence"
)

// SessionRepository stores one JSON file per design session under
// <root>/sessions.
type SessionRepository struct {
	root string
}

func NewSessionRepository(root string) *SessionRepository {
	return &SessionRepository{root: root}
}

func (sr *SessionRepository) dir() string {
	return filepath.Join(sr.root, "sessions")
}

func (sr *SessionRepository) path(id string) string {
	return filepath.Join(sr.dir(), id+".json")
}

func (sr *SessionRepository) SaveSession(_ context.Context, state *models.ConversationState) error {
	if !validDocumentID(state.SessionID) {
		return persistence.NewSessionError("SaveSession", state.SessionID, persistence.ErrInvalidID)
	}

	if err := os.MkdirAll(sr.dir(), 0o755); err != nil {
		return persistence.NewSessionError("SaveSession", state.SessionID, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return persistence.NewSessionError("SaveSession", state.SessionID, err)
	}

	if err := os.WriteFile(sr.path(state.SessionID), data, 0o600); err != nil {
		return persistence.NewSessionError("SaveSession", state.SessionID, err)
	}

	return nil
}

func (sr *SessionRepository) SessionByID(_ context.Context, id string) (*models.ConversationState, error) {
	if !validDocumentID(id) {
		return nil, persistence.NewSessionError("SessionByID", id, persistence.ErrInvalidID)
	}

	data, err := os.ReadFile(sr.path(id))
	if err != nil {
		if os.IsNotExist(err) {
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
	if _, err := os.Stat(sr.dir()); os.IsNotExist(err) {
		return []*models.ConversationState{}, nil
	}

	files, err := fs.Glob(os.DirFS(sr.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list session files: %w", err)
	}

	sessions := make([]*models.ConversationState, 0, len(files))

	for _, file := range files {
		id := file[:len(file)-len(".json")]

		state, err := sr.SessionByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if state.UserID == userID {
			sessions = append(sessions, state)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (sr *SessionRepository) DeleteSession(_ context.Context, id string) error {
	if !validDocumentID(id) {
		return persistence.NewSessionError("DeleteSession", id, persistence.ErrInvalidID)
	}

	err := os.Remove(sr.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewSessionError("DeleteSession", id, persistence.ErrSessionNotFound)
		}

		return persistence.NewSessionError("DeleteSession", id, err)
	}

	return nil
}
