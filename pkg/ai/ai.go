// Package ai defines the narrow contract the designer uses to reach an
// external text-generation capability. Implementations live in subpackages;
// the conversation manager depends only on this interface so it can be
// exercised with a deterministic fake.
package ai

import (
	"context"
	"fmt"

	"github.com/jutt313/agentsflow/pkg/models"
)

// RequirementAnalysis is the structured result of analyzing a free-text
// business/automation description.
type RequirementAnalysis struct {
	Industry                string   `json:"industry"`
	BusinessType            string   `json:"businessType"`
	RequiredFunctions       []string `json:"requiredFunctions"`
	AutomationOpportunities []string `json:"automationOpportunities"`
	RequiredIntegrations    []string `json:"requiredIntegrations"`
	RecommendedTeamSize     int      `json:"recommendedTeamSize"`
}

// Client is the text-generation capability consumed by the designer. Complete
// returns free text grounded on the full message history; AnalyzeRequirements
// is the structured variant and fails with *ParseError when the capability
// returns non-conforming output.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, history []models.Message, extraContext any) (string, error)
	AnalyzeRequirements(ctx context.Context, freeText string) (*RequirementAnalysis, error)
	DiscoverIntegrationCredentials(ctx context.Context, platform string) ([]models.DiscoveredCredential, error)
}

// ParseError reports that the capability returned output that does not
// conform to the requested structure. Callers treat it as recoverable and
// fall back to unstructured conversation.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable capability response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
