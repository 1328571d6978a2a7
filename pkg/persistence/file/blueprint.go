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

// BlueprintRepository stores one JSON file per blueprint under
// <root>/blueprints, keyed by workflow id.
type BlueprintRepository struct {
	root string
}

func NewBlueprintRepository(root string) *BlueprintRepository {
	return &BlueprintRepository{root: root}
}

func (br *BlueprintRepository) dir() string {
	return filepath.Join(br.root, "blueprints")
}

func (br *BlueprintRepository) path(workflowID string) string {
	return filepath.Join(br.dir(), workflowID+".json")
}

func (br *BlueprintRepository) SaveBlueprint(_ context.Context, blueprint *models.Blueprint) error {
	if !validDocumentID(blueprint.WorkflowID) {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, persistence.ErrInvalidID)
	}

	if err := os.MkdirAll(br.dir(), 0o755); err != nil {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, err)
	}

	data, err := json.MarshalIndent(blueprint, "", "  ")
	if err != nil {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, err)
	}

	if err := os.WriteFile(br.path(blueprint.WorkflowID), data, 0o600); err != nil {
		return persistence.NewBlueprintError("SaveBlueprint", blueprint.WorkflowID, err)
	}

	return nil
}

func (br *BlueprintRepository) BlueprintByWorkflowID(_ context.Context, workflowID string) (*models.Blueprint, error) {
	if !validDocumentID(workflowID) {
		return nil, persistence.NewBlueprintError("BlueprintByWorkflowID", workflowID, persistence.ErrInvalidID)
	}

	data, err := os.ReadFile(br.path(workflowID))
	if err != nil {
		if os.IsNotExist(err) {
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
	if _, err := os.Stat(br.dir()); os.IsNotExist(err) {
		return []*models.Blueprint{}, nil
	}

	files, err := fs.Glob(os.DirFS(br.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list blueprint files: %w", err)
	}

	blueprints := make([]*models.Blueprint, 0, len(files))

	for _, file := range files {
		workflowID := file[:len(file)-len(".json")]

		blueprint, err := br.BlueprintByWorkflowID(ctx, workflowID)
		if err != nil {
			return nil, err
		}

		if blueprint.UserID == userID {
			blueprints = append(blueprints, blueprint)
		}
	}

	sort.Slice(blueprints, func(i, j int) bool {
		return blueprints[i].CreatedAt.Before(blueprints[j].CreatedAt)
	})

	return blueprints, nil
}
