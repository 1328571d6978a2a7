package designer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

func TestParseSteps_SingleFunction(t *testing.T) {
	analysis := &ai.RequirementAnalysis{
		RequiredFunctions:    []string{"Notify via Slack"},
		RequiredIntegrations: []string{"Shopify", "Slack"},
	}

	steps := ParseSteps("When a Shopify order arrives, send a Slack notification", analysis)

	require.Len(t, steps, 3)
	assert.Equal(t, models.StepTypeTrigger, steps[0].Type)
	assert.Contains(t, steps[0].Name, "Scheduled")
	assert.Equal(t, models.StepTypeAction, steps[1].Type)
	assert.Equal(t, "Notify via Slack", steps[1].Name)
	assert.Equal(t, models.StepTypeSuccess, steps[2].Type)
}

func TestParseSteps_WebhookGoal(t *testing.T) {
	analysis := &ai.RequirementAnalysis{RequiredFunctions: []string{"Notify via Slack"}}

	steps := ParseSteps("Use a webhook when a Shopify order arrives", analysis)

	assert.Contains(t, steps[0].Name, "Webhook")
}

func TestParseSteps_AIClassification(t *testing.T) {
	analysis := &ai.RequirementAnalysis{
		RequiredFunctions: []string{"Summarize inbound emails", "Update CRM"},
	}

	steps := ParseSteps("handle my inbox", analysis)

	require.Len(t, steps, 4)
	assert.Equal(t, models.StepTypeAIAgent, steps[1].Type)
	assert.Equal(t, models.StepTypeAction, steps[2].Type)
}

func TestParseSteps_ZeroFunctions(t *testing.T) {
	steps := ParseSteps("do something", &ai.RequirementAnalysis{})

	require.Len(t, steps, 2)
	assert.Equal(t, models.StepTypeTrigger, steps[0].Type)
	assert.Equal(t, models.StepTypeSuccess, steps[1].Type)
	require.Len(t, steps[0].NextSteps, 1)
	assert.Equal(t, SuccessStepID, steps[0].NextSteps[0].StepID)
	assert.Empty(t, steps[1].NextSteps)
}

func TestParseSteps_NilAnalysis(t *testing.T) {
	steps := ParseSteps("do something", nil)

	require.Len(t, steps, 2)
}

func TestParseSteps_WellFormedGraph(t *testing.T) {
	analysis := &ai.RequirementAnalysis{
		RequiredFunctions: []string{"Summarize inbound emails", "Update CRM", "Notify via Slack"},
	}

	steps := ParseSteps("handle my inbox with a webhook", analysis)

	ids := make(map[string]bool, len(steps))
	triggers, successes := 0, 0

	for _, step := range steps {
		ids[step.ID] = true

		switch step.Type {
		case models.StepTypeTrigger:
			triggers++

			assert.Equal(t, 1, step.StepNumber)
		case models.StepTypeSuccess:
			successes++

			assert.Empty(t, step.NextSteps)
		}
	}

	assert.Equal(t, 1, triggers)
	assert.Equal(t, 1, successes)

	for _, step := range steps {
		for _, next := range step.NextSteps {
			assert.True(t, ids[next.StepID], "step %s links to unknown step %s", step.ID, next.StepID)
		}
	}

	// Step numbers match linear execution order.
	for i, step := range steps {
		assert.Equal(t, i+1, step.StepNumber)
	}
}
