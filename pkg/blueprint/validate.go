package blueprint

import (
	"fmt"

	"github.com/jutt313/agentsflow/pkg/models"
)

// Report is the outcome of blueprint validation. Validation never mutates
// its input and never panics; structural problems come back as human-readable
// error strings for the caller to act on.
type Report struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks a blueprint's required fields and referential integrity.
// Checks dispatch on the payload kind: automation blueprints are validated
// against their step graph, workforce blueprints against their agent roster.
func Validate(bp *models.Blueprint) Report {
	errs := make([]string, 0)

	if bp == nil {
		return Report{IsValid: false, Errors: []string{"blueprint is nil"}}
	}

	if bp.WorkflowID == "" {
		errs = append(errs, "missing workflow_id")
	}

	if bp.WorkflowName == "" {
		errs = append(errs, "missing workflow_name")
	}

	switch bp.Kind {
	case models.KindAutomation:
		errs = append(errs, validateAutomation(bp.Automation)...)
	case models.KindAIWorkforce:
		errs = append(errs, validateWorkforce(bp.Workforce)...)
	default:
		errs = append(errs, fmt.Sprintf("unknown blueprint kind %q", bp.Kind))
	}

	return Report{IsValid: len(errs) == 0, Errors: errs}
}

func validateAutomation(payload *models.AutomationPayload) []string {
	if payload == nil {
		return []string{"automation blueprint has no automation payload"}
	}

	errs := make([]string, 0)

	if len(payload.Steps) == 0 {
		errs = append(errs, "no steps defined")

		return errs
	}

	stepIDs := make(map[string]bool, len(payload.Steps))
	triggers := 0

	for _, step := range payload.Steps {
		stepIDs[step.ID] = true

		if step.Type == models.StepTypeTrigger {
			triggers++
		}
	}

	if triggers != 1 {
		errs = append(errs, fmt.Sprintf("expected exactly one trigger step, found %d", triggers))
	}

	if payload.Steps[0].Type != models.StepTypeTrigger {
		errs = append(errs, "first step must be the trigger")
	}

	for _, step := range payload.Steps {
		for _, next := range step.NextSteps {
			if !stepIDs[next.StepID] {
				errs = append(errs, fmt.Sprintf("step %s links to non-existent step %s", step.ID, next.StepID))
			}
		}

		if step.IsTerminal() && step.Type != models.StepTypeSuccess && step.Type != models.StepTypeErrorHandler {
			errs = append(errs, fmt.Sprintf("step %s is terminal but is not a success or error-handler step", step.ID))
		}
	}

	for aiStepID := range payload.AISteps {
		if !stepIDs[aiStepID] {
			errs = append(errs, fmt.Sprintf("ai_steps entry %s does not match any step", aiStepID))
		}
	}

	return errs
}

func validateWorkforce(payload *models.WorkforcePayload) []string {
	if payload == nil {
		return []string{"workforce blueprint has no workforce payload"}
	}

	errs := make([]string, 0)

	if len(payload.Agents) == 0 {
		errs = append(errs, "no agents defined")

		return errs
	}

	agentIDs := make(map[string]bool, len(payload.Agents))
	for _, agent := range payload.Agents {
		agentIDs[agent.AgentID] = true
	}

	for _, agent := range payload.Agents {
		if agent.ReportsTo != "" && !agentIDs[agent.ReportsTo] {
			errs = append(errs, fmt.Sprintf("agent %s reports to non-existent agent %s", agent.AgentID, agent.ReportsTo))
		}

		for _, managed := range agent.Manages {
			if !agentIDs[managed] {
				errs = append(errs, fmt.Sprintf("agent %s manages non-existent agent %s", agent.AgentID, managed))
			}
		}
	}

	return errs
}
