// Package designer implements the conversation-driven automation designer:
// a staged conversation manager that turns free-text goals into a typed step
// graph, advisory recommendations, discovered credential requirements, and
// finally a generated blueprint.
package designer

import (
	"fmt"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

// SuccessStepID is the id of the terminal success step every parsed graph
// ends with.
const SuccessStepID = "step-success"

// Trigger step names. The blueprint generator classifies the trigger type by
// the capitalized "Webhook" substring in the first step's name, so these
// exact names are load-bearing.
const (
	webhookTriggerName   = "Trigger: Webhook event"
	scheduledTriggerName = "Trigger: Scheduled trigger"
)

// ParseSteps turns a free-text goal plus its requirement analysis into an
// ordered, linearly linked step graph: a trigger, one step per required
// function, and a terminal success step. A goal with no required functions
// yields the minimal two-node trigger to success graph.
func ParseSteps(goal string, analysis *ai.RequirementAnalysis) []*models.AutomationStep {
	functions := []string{}
	if analysis != nil {
		functions = analysis.RequiredFunctions
	}

	steps := make([]*models.AutomationStep, 0, len(functions)+2)

	triggerName := scheduledTriggerName
	if IsWebhookGoal(goal) {
		triggerName = webhookTriggerName
	}

	steps = append(steps, &models.AutomationStep{
		ID:          "step-1",
		StepNumber:  1,
		Type:        models.StepTypeTrigger,
		Name:        triggerName,
		Description: "Starts the automation",
	})

	for i, function := range functions {
		stepType := models.StepTypeAction
		if IsAIWorthy(function) {
			stepType = models.StepTypeAIAgent
		}

		steps = append(steps, &models.AutomationStep{
			ID:         fmt.Sprintf("step-%d", i+2),
			StepNumber: i + 2,
			Type:       stepType,
			Name:       function,
		})
	}

	steps = append(steps, &models.AutomationStep{
		ID:          SuccessStepID,
		StepNumber:  len(functions) + 2,
		Type:        models.StepTypeSuccess,
		Name:        "Automation Complete",
		Description: "All steps finished successfully",
		NextSteps:   []models.NextStep{},
	})

	// Chain each step to its immediate successor; the success step stays
	// terminal.
	for i := 0; i < len(steps)-1; i++ {
		steps[i].NextSteps = []models.NextStep{{StepID: steps[i+1].ID}}
	}

	return steps
}
