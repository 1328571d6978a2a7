package designer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

// fakeClient is a deterministic capability implementation for tests.
type fakeClient struct {
	analysis      *ai.RequirementAnalysis
	analyzeErr    error
	completeText  string
	completeErr   error
	discovered    []models.DiscoveredCredential
	discoverErr   error
	completeCalls int
}

func (f *fakeClient) Complete(_ context.Context, _ string, _ []models.Message, _ any) (string, error) {
	f.completeCalls++

	if f.completeErr != nil {
		return "", f.completeErr
	}

	return f.completeText, nil
}

func (f *fakeClient) AnalyzeRequirements(_ context.Context, _ string) (*ai.RequirementAnalysis, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}

	return f.analysis, nil
}

func (f *fakeClient) DiscoverIntegrationCredentials(_ context.Context, _ string) ([]models.DiscoveredCredential, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}

	return f.discovered, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(client ai.Client) *Manager {
	return NewManager(client, testLogger(), "session-1", "user-1")
}

func orderNotificationClient() *fakeClient {
	return &fakeClient{
		analysis: &ai.RequirementAnalysis{
			Industry:             "e-commerce",
			BusinessType:         "Online Store",
			RequiredFunctions:    []string{"Notify via Slack"},
			RequiredIntegrations: []string{"Shopify", "Slack"},
		},
		completeText: "Which Slack channel should the notification go to?",
	}
}

func TestInitializeConversation(t *testing.T) {
	manager := newTestManager(orderNotificationClient())

	greeting := manager.InitializeConversation()

	assert.NotEmpty(t, greeting)
	assert.Equal(t, models.StageInitial, manager.State().Stage)
	assert.Equal(t, models.ModeAutomation, manager.State().DesignMode)
	require.Len(t, manager.State().Messages, 1)
	assert.Equal(t, models.RoleAssistant, manager.State().Messages[0].Role)
}

func TestProcessUserMessage_InitialGoal(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()

	response := manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")

	state := manager.State()
	assert.Equal(t, models.StageDiagramDraft, state.Stage)
	require.NotNil(t, state.Business)
	assert.Equal(t, "e-commerce", state.Business.Industry)
	require.Len(t, state.Steps, 3)
	assert.Contains(t, response, "Notify via Slack")

	// The user message and the draft reply landed in history.
	require.Len(t, state.Messages, 3)
	assert.Equal(t, models.RoleUser, state.Messages[1].Role)
	assert.Equal(t, models.RoleAssistant, state.Messages[2].Role)
}

func TestProcessUserMessage_HappyPathToCompletion(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()

	stages := []models.ConversationStage{manager.State().Stage}
	record := func() { stages = append(stages, manager.State().Stage) }

	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	record()

	// The draft reply turn passes through clarification; integrations are
	// known and the graph has three steps, so it exits to recommendations.
	response := manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	record()
	assert.Contains(t, response, "Which Slack channel")
	assert.Contains(t, response, "suggest a few improvements")

	// Recommendations are presented once and the reply falls to credentials.
	response = manager.ProcessUserMessage(t.Context(), "sounds good")
	record()
	assert.Contains(t, response, "recommendations")
	assert.NotEmpty(t, manager.State().Recommendations)

	response = manager.ProcessUserMessage(t.Context(), "all done, credentials provided")
	record()
	assert.Contains(t, response, "ready for review")

	state := manager.State()
	require.NotNil(t, state.Blueprint)
	assert.Equal(t, models.BlueprintStatusDraft, state.Blueprint.Status)
	assert.False(t, state.Blueprint.ApprovedByUser)

	response = manager.ProcessUserMessage(t.Context(), "approve")
	record()
	assert.Contains(t, response, "approved")
	assert.Equal(t, models.BlueprintStatusReadyForBuild, state.Blueprint.Status)
	assert.True(t, state.Blueprint.ApprovedByUser)
	require.NotNil(t, state.Blueprint.ApprovalTimestamp)

	// Stage ordinals never decrease across the whole session.
	for i := 1; i < len(stages); i++ {
		assert.GreaterOrEqual(t, stages[i].Ordinal(), stages[i-1].Ordinal(),
			"stage regressed from %s to %s", stages[i-1], stages[i])
	}

	assert.Equal(t, models.StageComplete, manager.State().Stage)
}

func TestProcessUserMessage_CompleteIsTerminal(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.Load(&models.ConversationState{
		SessionID: "session-1",
		UserID:    "user-1",
		Stage:     models.StageComplete,
	})

	response := manager.ProcessUserMessage(t.Context(), "one more thing")

	assert.Equal(t, completeResponse, response)
	assert.Equal(t, models.StageComplete, manager.State().Stage)
}

func TestProcessUserMessage_UnparsableAnalysisFallsBack(t *testing.T) {
	client := orderNotificationClient()
	client.analyzeErr = &ai.ParseError{Raw: "not json", Err: errors.New("invalid character")}
	client.completeText = "Tell me a bit more about what you'd like to automate."

	manager := newTestManager(client)
	manager.InitializeConversation()

	response := manager.ProcessUserMessage(t.Context(), "automate my stuff")

	assert.Equal(t, "Tell me a bit more about what you'd like to automate.", response)
	assert.Equal(t, models.StageInitial, manager.State().Stage)
	assert.Empty(t, manager.State().Steps)
	assert.Equal(t, 1, client.completeCalls)
}

func TestProcessUserMessage_CapabilityFailureYieldsApology(t *testing.T) {
	client := orderNotificationClient()
	client.analyzeErr = errors.New("connection refused")

	manager := newTestManager(client)
	manager.InitializeConversation()

	response := manager.ProcessUserMessage(t.Context(), "automate my stuff")

	assert.Equal(t, apologyResponse, response)
	assert.Equal(t, models.StageInitial, manager.State().Stage)

	// The failed turn still leaves both the user message and the apology in
	// history.
	messages := manager.State().Messages
	require.Len(t, messages, 3)
	assert.Equal(t, "automate my stuff", messages[1].Content)
	assert.Equal(t, apologyResponse, messages[2].Content)
}

func TestProcessUserMessage_TurnErrorSurfacesHiddenFailure(t *testing.T) {
	client := orderNotificationClient()
	client.analyzeErr = errors.New("connection refused")

	manager := newTestManager(client)
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "automate my stuff")

	require.Error(t, manager.TurnError())
	assert.Contains(t, manager.TurnError().Error(), "connection refused")

	// The next successful turn clears it.
	client.analyzeErr = nil
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")

	assert.NoError(t, manager.TurnError())
	assert.Equal(t, models.StageDiagramDraft, manager.State().Stage)
}

func TestProcessUserMessage_CredentialRequestEnumeration(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	manager.ProcessUserMessage(t.Context(), "sounds good")

	require.Equal(t, models.StageCredentials, manager.State().Stage)

	response := manager.ProcessUserMessage(t.Context(), "what do you need from me?")

	assert.Contains(t, response, "Shopify")
	assert.Contains(t, response, "Slack")
	assert.Contains(t, response, "access_token")
	assert.Contains(t, response, "bot_token")
	assert.Equal(t, models.StageCredentials, manager.State().Stage)
	assert.Nil(t, manager.State().Blueprint)
}

func TestProcessUserMessage_UnknownPlatformDiscovery(t *testing.T) {
	client := orderNotificationClient()
	client.analysis.RequiredIntegrations = []string{"ObscureCRM"}
	client.discoverErr = errors.New("capability unavailable")

	manager := newTestManager(client)
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	manager.ProcessUserMessage(t.Context(), "sounds good")

	response := manager.ProcessUserMessage(t.Context(), "what do you need from me?")

	assert.Contains(t, response, "ObscureCRM")
	assert.Contains(t, response, noCredentialInfoNotice)
}

func TestProcessUserMessage_ApprovalFinalizePromptOnCompletionPhrase(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	manager.ProcessUserMessage(t.Context(), "sounds good")
	manager.ProcessUserMessage(t.Context(), "credentials saved")

	require.Equal(t, models.StageApproval, manager.State().Stage)

	response := manager.ProcessUserMessage(t.Context(), "all credentials provided")

	assert.Equal(t, finalizePrompt, response)
	assert.Equal(t, models.StageApproval, manager.State().Stage)
}

func TestProcessUserMessage_ApprovalDelegatesFreeText(t *testing.T) {
	client := orderNotificationClient()
	manager := newTestManager(client)
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	manager.ProcessUserMessage(t.Context(), "sounds good")
	manager.ProcessUserMessage(t.Context(), "credentials saved")

	client.completeText = "The notification includes the order id and total."

	response := manager.ProcessUserMessage(t.Context(), "what exactly will the message include?")

	assert.Equal(t, "The notification includes the order id and total.", response)
	assert.Equal(t, models.StageApproval, manager.State().Stage)
}

func TestStateLoadRoundTrip(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")

	saved := manager.State()

	restored := newTestManager(orderNotificationClient())
	restored.Load(saved)

	assert.Equal(t, saved, restored.State())

	// The restored manager continues where the saved one left off.
	restored.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	assert.Equal(t, models.StageRecommendations, restored.State().Stage)
}

func TestSetCredentialReference(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()

	manager.SetCredentialReference("Slack", "vault://cred/abc123")

	assert.Equal(t, "vault://cred/abc123", manager.State().Credentials["Slack"])
}

func TestProcessUserMessage_BlueprintCarriesCredentialReferences(t *testing.T) {
	manager := newTestManager(orderNotificationClient())
	manager.InitializeConversation()
	manager.ProcessUserMessage(t.Context(), "When a Shopify order arrives, send a Slack notification")
	manager.ProcessUserMessage(t.Context(), "Post it to the #orders channel")
	manager.ProcessUserMessage(t.Context(), "sounds good")
	manager.SetCredentialReference("Slack", "vault://cred/abc123")
	manager.ProcessUserMessage(t.Context(), "credentials saved")

	bp := manager.State().Blueprint
	require.NotNil(t, bp)
	assert.Equal(t, "vault://cred/abc123", bp.Credentials["Slack"])
}
