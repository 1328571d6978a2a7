package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/models"
)

func TestValidate_NilBlueprint(t *testing.T) {
	report := Validate(nil)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "blueprint is nil")
}

func TestValidate_ValidAutomation(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Webhook event"), nil, "user-1")

	report := Validate(bp)

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
}

func TestValidate_MissingEnvelopeFields(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.WorkflowID = ""
	bp.WorkflowName = ""

	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "missing workflow_id")
	assert.Contains(t, report.Errors, "missing workflow_name")
}

func TestValidate_UnknownKind(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.Kind = models.BlueprintKind("Robot Army")

	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, `unknown blueprint kind "Robot Army"`)
}

func TestValidateAutomation_EmptySteps(t *testing.T) {
	report := Validate(&models.Blueprint{
		WorkflowID:   "wf-1",
		WorkflowName: "Test",
		Kind:         models.KindAutomation,
		Automation:   &models.AutomationPayload{},
	})

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "no steps defined")
}

func TestValidateAutomation_BrokenStepLink(t *testing.T) {
	steps := sampleSteps("Trigger: Scheduled trigger")
	steps[2].NextSteps = []models.NextStep{{StepID: "step-missing"}}

	bp := GenerateAutomation(sampleBusiness(), steps, nil, "user-1")
	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "step step-3 links to non-existent step step-missing")
}

func TestValidateAutomation_TriggerPlacement(t *testing.T) {
	steps := sampleSteps("Trigger: Scheduled trigger")
	// Demote the trigger so an action leads the graph.
	steps[0].Type = models.StepTypeAction

	bp := GenerateAutomation(sampleBusiness(), steps, nil, "user-1")
	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "expected exactly one trigger step, found 0")
	assert.Contains(t, report.Errors, "first step must be the trigger")
}

func TestValidateAutomation_DanglingTerminalStep(t *testing.T) {
	steps := sampleSteps("Trigger: Scheduled trigger")
	steps[2].NextSteps = []models.NextStep{}
	steps = steps[:3]

	bp := GenerateAutomation(sampleBusiness(), steps, nil, "user-1")
	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "step step-3 is terminal but is not a success or error-handler step")
}

func TestValidateAutomation_OrphanAIStep(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.Automation.AISteps["step-ghost"] = models.AIAgentConfig{LLM: "deepseek"}

	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "ai_steps entry step-ghost does not match any step")
}

func TestValidate_ValidWorkforce(t *testing.T) {
	bp := GenerateWorkforce(sampleBusiness(), sampleTeam(true), nil, "user-1")

	report := Validate(bp)

	assert.True(t, report.IsValid)
}

func TestValidateWorkforce_EmptyAgents(t *testing.T) {
	report := Validate(&models.Blueprint{
		WorkflowID:   "wf-1",
		WorkflowName: "Test",
		Kind:         models.KindAIWorkforce,
		Workforce:    &models.WorkforcePayload{},
	})

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "no agents defined")
}

func TestValidateWorkforce_BrokenReferences(t *testing.T) {
	bp := GenerateWorkforce(sampleBusiness(), sampleTeam(true), nil, "user-1")

	require.NotEmpty(t, bp.Workforce.Agents)
	bp.Workforce.Agents[1].ReportsTo = "manager-404"
	bp.Workforce.Agents[0].Manages = append(bp.Workforce.Agents[0].Manages, "specialist-404")

	report := Validate(bp)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "agent specialist-001 reports to non-existent agent manager-404")
	assert.Contains(t, report.Errors, "agent manager-001 manages non-existent agent specialist-404")
}

func TestValidate_MismatchedPayload(t *testing.T) {
	report := Validate(&models.Blueprint{
		WorkflowID:   "wf-1",
		WorkflowName: "Test",
		Kind:         models.KindAutomation,
	})

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "automation blueprint has no automation payload")
}
