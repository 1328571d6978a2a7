package designer

import (
	"fmt"
	"strings"

	"github.com/jutt313/agentsflow/pkg/models"
)

// maxRecommendations caps how many suggestions a single pass returns.
const maxRecommendations = 3

// Recommend inspects the step graph and proposes improvements: AI
// augmentation for email-handling actions, retry policies for unprotected
// actions, and a single global failure alert when no error handler exists.
// Rules evaluate per step in graph order, first match wins per step, and the
// result is truncated to the first three so output is stable across runs.
func Recommend(steps []*models.AutomationStep) []*models.Recommendation {
	recommendations := make([]*models.Recommendation, 0, maxRecommendations)
	hasErrorHandler := false

	for _, step := range steps {
		if step.Type == models.StepTypeErrorHandler {
			hasErrorHandler = true
		}

		if step.Type != models.StepTypeAction {
			continue
		}

		if strings.Contains(strings.ToLower(step.Name), "email") {
			recommendations = append(recommendations, &models.Recommendation{
				Title:      fmt.Sprintf("Add an AI email summarizer after %q", step.Name),
				Rationale:  "An AI step can condense email content before downstream steps act on it.",
				Type:       models.RecommendationAIAgent,
				StepNumber: step.StepNumber,
			})

			continue
		}

		if step.Config == nil || step.Config.Retry == nil {
			recommendations = append(recommendations, &models.Recommendation{
				Title:      fmt.Sprintf("Add exponential-backoff retries to %q", step.Name),
				Rationale:  "Transient failures in this step will currently fail the whole run.",
				Type:       models.RecommendationRetry,
				StepNumber: step.StepNumber,
			})
		}
	}

	if !hasErrorHandler {
		recommendations = append(recommendations, &models.Recommendation{
			Title:     "Add a global failure alert",
			Rationale: "No error-handler step exists, so failures would go unnoticed.",
			Type:      models.RecommendationAlert,
		})
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations
}
