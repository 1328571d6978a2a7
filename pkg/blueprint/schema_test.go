package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_GeneratedAutomation(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Webhook event"), nil, "user-1")

	report, err := ValidateSchema(bp)
	require.NoError(t, err)
	assert.True(t, report.IsValid, "errors: %v", report.Errors)
}

func TestValidateSchema_GeneratedWorkforce(t *testing.T) {
	bp := GenerateWorkforce(sampleBusiness(), sampleTeam(true), map[string]string{"Slack": "vault://cred/1"}, "user-1")

	report, err := ValidateSchema(bp)
	require.NoError(t, err)
	assert.True(t, report.IsValid, "errors: %v", report.Errors)
}

func TestValidateSchema_RejectsBadStatus(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.Status = "pending"

	report, err := ValidateSchema(bp)
	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidateSchema_RejectsMissingPayload(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.Automation = nil

	report, err := ValidateSchema(bp)
	require.NoError(t, err)
	assert.False(t, report.IsValid)
}

func TestValidateSchema_RejectsEmptyWorkflowID(t *testing.T) {
	bp := GenerateAutomation(sampleBusiness(), sampleSteps("Trigger: Scheduled trigger"), nil, "user-1")
	bp.WorkflowID = ""

	report, err := ValidateSchema(bp)
	require.NoError(t, err)
	assert.False(t, report.IsValid)
}
