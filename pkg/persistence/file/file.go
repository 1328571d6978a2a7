// Package file provides file-based persistence for design sessions and
// blueprints. Each document is one JSON file; it suits local development and
// tests, not multi-instance deployments.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/jutt313/agentsflow/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the
// file system.
type Persistence struct {
	root          string
	sessionRepo   *SessionRepository
	blueprintRepo *BlueprintRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix is accepted and stripped.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:          cleanRoot,
		sessionRepo:   NewSessionRepository(cleanRoot),
		blueprintRepo: NewBlueprintRepository(cleanRoot),
	}
}

func (fp *Persistence) Sessions() persistence.SessionRepository {
	return fp.sessionRepo
}

func (fp *Persistence) Blueprints() persistence.BlueprintRepository {
	return fp.blueprintRepo
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. For file-based persistence there is
// nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// validDocumentID rejects identifiers that could escape the repository
// directory once joined into a file path. Identifiers arrive from URL
// params, so this runs before every path construction.
func validDocumentID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}

	return !strings.ContainsAny(id, `/\`)
}
