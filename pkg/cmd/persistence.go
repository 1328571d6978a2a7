// Package cmd provides shared construction helpers for the binaries.
package cmd

import (
	"strings"

	"github.com/jutt313/agentsflow/pkg/persistence"
	"github.com/jutt313/agentsflow/pkg/persistence/file"
	"github.com/jutt313/agentsflow/pkg/persistence/redis"
)

// NewPersistence selects a persistence backend from the database URL scheme.
// Anything without a recognized scheme is treated as a file path.
func NewPersistence(databaseURL string) (persistence.Persistence, error) {
	switch parseProvider(databaseURL) {
	case "redis", "rediss":
		return redis.NewPersistence(databaseURL)
	default:
		return file.NewPersistence(databaseURL), nil
	}
}

func parseProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return scheme
}
