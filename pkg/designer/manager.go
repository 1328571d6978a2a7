package designer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/blueprint"
	"github.com/jutt313/agentsflow/pkg/credentials"
	"github.com/jutt313/agentsflow/pkg/models"
)

// Static responses of the conversation protocol.
const (
	greetingResponse = `Hi! I'm your AgentsFlow Designer. Describe the business process you'd like to automate, in your own words, and I'll turn it into a working automation design for you.

For example: "When a Shopify order arrives, send a Slack notification to my team."`

	apologyResponse = "I'm sorry, something went wrong on my end while processing that. Please send your message again."

	completeResponse = "This design session is complete and your blueprint has been handed off for building. Start a new session to design another automation."

	finalizePrompt = `Great, everything is in place. Review the blueprint summary above and say "approve" to finalize it so the Builder Agent can start building.`
)

// Manager drives one design session: it owns the ConversationState for the
// session's lifetime and advances it through the staged protocol one user
// message at a time. Callers must serialize ProcessUserMessage calls per
// session; two Managers for different sessions are fully independent.
type Manager struct {
	client  ai.Client
	logger  *slog.Logger
	state   *models.ConversationState
	turnErr error
}

// NewManager creates a manager for a fresh design session.
func NewManager(client ai.Client, logger *slog.Logger, sessionID, userID string) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	now := time.Now().UTC()

	return &Manager{
		client: client,
		logger: logger.With("session_id", sessionID),
		state: &models.ConversationState{
			SessionID:  sessionID,
			UserID:     userID,
			Stage:      models.StageInitial,
			DesignMode: models.ModeAutomation,
			Messages:   []models.Message{},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}

// State returns the full conversation state for external persistence. The
// returned value is the live state, not a copy; callers must not mutate it
// while a message is in flight.
func (m *Manager) State() *models.ConversationState {
	return m.state
}

// Load replaces the manager's state wholesale with a previously persisted
// one. There is no partial-update variant.
func (m *Manager) Load(state *models.ConversationState) {
	m.state = state
}

// SetCredentialReference records an opaque vault reference for a platform.
// The reference is a pointer into the external credential store, never the
// secret itself.
func (m *Manager) SetCredentialReference(platform, reference string) {
	if m.state.Credentials == nil {
		m.state.Credentials = map[string]string{}
	}

	m.state.Credentials[platform] = reference
	m.state.UpdatedAt = time.Now().UTC()
}

// InitializeConversation starts the session: automation mode, initial stage,
// and a fixed greeting appended to history.
func (m *Manager) InitializeConversation() string {
	m.state.Stage = models.StageInitial
	m.state.DesignMode = models.ModeAutomation
	m.appendMessage(models.RoleAssistant, greetingResponse)
	m.state.UpdatedAt = time.Now().UTC()

	return greetingResponse
}

// ProcessUserMessage is the sole state-transition entry point. The user's
// message is appended to history unconditionally; on any processing failure
// the stage is left unchanged and a fixed apology becomes the assistant's
// reply, so the transcript stays coherent. The failure itself is retained
// and readable through TurnError until the next call.
func (m *Manager) ProcessUserMessage(ctx context.Context, text string) string {
	m.appendMessage(models.RoleUser, text)

	response, err := m.advance(ctx, text)
	m.turnErr = err

	if err != nil {
		m.logger.Error("failed to process designer message",
			"stage", m.state.Stage,
			"error", err)

		response = apologyResponse
	}

	m.appendMessage(models.RoleAssistant, response)
	m.state.UpdatedAt = time.Now().UTC()

	return response
}

// TurnError reports the failure hidden behind the apology reply of the most
// recent ProcessUserMessage call, or nil if that turn succeeded.
func (m *Manager) TurnError() error {
	return m.turnErr
}

// outcome is a stage handler's result. A handler that advances the stage and
// sets delegate hands the same message to the new stage's handler within the
// same call, which keeps pass-through stages explicit.
type outcome struct {
	response string
	delegate bool
}

func (m *Manager) advance(ctx context.Context, text string) (string, error) {
	entryStage := m.state.Stage
	parts := make([]string, 0, 2)

	for {
		out, err := m.dispatch(ctx, text)
		if err != nil {
			m.state.Stage = entryStage

			return "", err
		}

		if out.response != "" {
			parts = append(parts, out.response)
		}

		if !out.delegate {
			break
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

func (m *Manager) dispatch(ctx context.Context, text string) (outcome, error) {
	switch m.state.Stage {
	case models.StageInitial:
		return m.handleInitial(ctx, text)
	case models.StageDiagramDraft:
		return m.handleDiagramDraft()
	case models.StageClarification:
		return m.handleClarification(ctx)
	case models.StageRecommendations:
		return m.handleRecommendations()
	case models.StageCredentials:
		return m.handleCredentials(ctx, text)
	case models.StageApproval:
		return m.handleApproval(ctx, text)
	case models.StageComplete:
		return outcome{response: completeResponse}, nil
	default:
		return outcome{}, fmt.Errorf("unknown conversation stage %q", m.state.Stage)
	}
}

// handleInitial treats the first user message as the automation goal:
// analyze it, derive the step graph, and advance to the diagram draft. An
// unparsable analysis degrades to plain conversation without advancing.
func (m *Manager) handleInitial(ctx context.Context, text string) (outcome, error) {
	analysis, err := m.client.AnalyzeRequirements(ctx, text)
	if err != nil {
		var parseErr *ai.ParseError
		if errors.As(err, &parseErr) {
			m.logger.Warn("requirement analysis returned unparsable output, falling back to free-text reply",
				"error", err)

			response, completeErr := m.client.Complete(ctx, designerSystemPrompt, m.state.Messages, nil)
			if completeErr != nil {
				return outcome{}, completeErr
			}

			return outcome{response: response}, nil
		}

		return outcome{}, fmt.Errorf("requirement analysis failed: %w", err)
	}

	m.applyAnalysis(analysis)
	m.state.Steps = ParseSteps(text, analysis)

	if m.state.DesignMode == models.ModeAIWorkforce {
		m.state.Team = DesignTeam(analysis)
	}

	m.state.Stage = models.StageDiagramDraft

	return outcome{response: m.draftSummary()}, nil
}

// handleDiagramDraft is a pass-through: the draft was already presented, so
// the user's reply goes straight into clarification.
func (m *Manager) handleDiagramDraft() (outcome, error) {
	m.state.Stage = models.StageClarification

	return outcome{delegate: true}, nil
}

func (m *Manager) handleClarification(ctx context.Context) (outcome, error) {
	response, err := m.client.Complete(ctx, designerSystemPrompt, m.state.Messages, m.state.Business)
	if err != nil {
		return outcome{}, fmt.Errorf("clarification reply failed: %w", err)
	}

	if m.readyForRecommendations() {
		m.state.Stage = models.StageRecommendations
		response += "\n\nI think we have enough detail now. Before we connect your accounts, let me suggest a few improvements."
	}

	return outcome{response: response}, nil
}

// readyForRecommendations is the clarification exit condition: integrations
// are known and the graph carries at least one functional step.
func (m *Manager) readyForRecommendations() bool {
	return m.state.Business != nil &&
		len(m.state.Business.RequiredIntegrations) > 0 &&
		len(m.state.Steps) > 2
}

// handleRecommendations computes recommendations fresh, presents them once,
// and moves on. Recommendations are advisory only; they are never merged
// back into the step graph, and the user's reply is handled by the
// credentials stage regardless of its content.
func (m *Manager) handleRecommendations() (outcome, error) {
	recommendations := Recommend(m.state.Steps)
	m.state.Recommendations = recommendations
	m.state.Stage = models.StageCredentials

	if len(recommendations) == 0 {
		return outcome{delegate: true}, nil
	}

	return outcome{response: formatRecommendations(recommendations)}, nil
}

func (m *Manager) handleCredentials(ctx context.Context, text string) (outcome, error) {
	required := m.requiredIntegrations()

	if HasCompletionPhrase(text) || len(required) == 0 {
		m.generateBlueprint()
		m.state.Stage = models.StageApproval

		return outcome{response: m.approvalPrompt()}, nil
	}

	m.discoverIntegrations(ctx, required)

	return outcome{response: FormatCredentialRequest(m.state.Integrations)}, nil
}

func (m *Manager) handleApproval(ctx context.Context, text string) (outcome, error) {
	if HasCompletionPhrase(text) {
		return outcome{response: finalizePrompt}, nil
	}

	if HasApprovalPhrase(text) {
		m.approveBlueprint()
		m.state.Stage = models.StageComplete

		return outcome{response: m.completionSummary()}, nil
	}

	grounding := map[string]any{
		"business_context": m.state.Business,
		"automation_steps": m.state.Steps,
	}

	response, err := m.client.Complete(ctx, designerSystemPrompt, m.state.Messages, grounding)
	if err != nil {
		return outcome{}, fmt.Errorf("approval reply failed: %w", err)
	}

	return outcome{response: response}, nil
}

func (m *Manager) appendMessage(role models.MessageRole, content string) {
	m.state.Messages = append(m.state.Messages, models.Message{Role: role, Content: content})
}

// applyAnalysis merges analysis results into the business context. Fields
// are only ever added, never removed or overwritten.
func (m *Manager) applyAnalysis(analysis *ai.RequirementAnalysis) {
	if m.state.Business == nil {
		m.state.Business = &models.BusinessContext{}
	}

	business := m.state.Business

	if business.Industry == "" {
		business.Industry = analysis.Industry
	}

	if business.BusinessType == "" {
		business.BusinessType = analysis.BusinessType
	}

	business.RequiredFunctions = appendMissing(business.RequiredFunctions, analysis.RequiredFunctions)
	business.AutomationOpportunities = appendMissing(business.AutomationOpportunities, analysis.AutomationOpportunities)
	business.RequiredIntegrations = appendMissing(business.RequiredIntegrations, analysis.RequiredIntegrations)
}

func appendMissing(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, value := range existing {
		seen[value] = true
	}

	for _, value := range incoming {
		if !seen[value] {
			existing = append(existing, value)
			seen[value] = true
		}
	}

	return existing
}

func (m *Manager) requiredIntegrations() []string {
	if m.state.Business == nil {
		return nil
	}

	return m.state.Business.RequiredIntegrations
}

// discoverIntegrations resolves the credential fields each required platform
// needs, preferring the static registry and falling back to the capability
// for unknown platforms. A platform whose fields cannot be determined is
// recorded with an empty list so the request message still names it.
func (m *Manager) discoverIntegrations(ctx context.Context, required []string) {
	known := make(map[string]bool, len(m.state.Integrations))
	for _, integration := range m.state.Integrations {
		known[integration.Platform] = true
	}

	for _, platform := range required {
		if known[platform] {
			continue
		}

		m.state.Integrations = append(m.state.Integrations, models.DiscoveredIntegration{
			Platform:    platform,
			Credentials: m.discoverCredentials(ctx, platform),
		})
		known[platform] = true
	}
}

func (m *Manager) discoverCredentials(ctx context.Context, platform string) []models.DiscoveredCredential {
	if spec, ok := credentials.Find(platform); ok {
		discovered := make([]models.DiscoveredCredential, 0, len(spec.Fields))

		for _, field := range spec.Fields {
			description := field.Description
			if description == "" {
				description = field.Label
			}

			discovered = append(discovered, models.DiscoveredCredential{
				Name:        field.Name,
				Description: description,
			})
		}

		return discovered
	}

	discovered, err := m.client.DiscoverIntegrationCredentials(ctx, platform)
	if err != nil {
		m.logger.Warn("credential discovery failed for platform",
			"platform", platform,
			"error", err)

		return []models.DiscoveredCredential{}
	}

	return discovered
}

func (m *Manager) generateBlueprint() {
	switch m.state.DesignMode {
	case models.ModeAIWorkforce:
		team := m.state.Team
		if team == nil {
			analysis := &ai.RequirementAnalysis{}
			if m.state.Business != nil {
				analysis.RequiredFunctions = m.state.Business.RequiredFunctions
			}

			team = DesignTeam(analysis)
			m.state.Team = team
		}

		m.state.Blueprint = blueprint.GenerateWorkforce(m.state.Business, team, m.state.Credentials, m.state.UserID)
	default:
		m.state.Blueprint = blueprint.GenerateAutomation(m.state.Business, m.state.Steps, m.state.Credentials, m.state.UserID)
	}
}

// approveBlueprint replaces the blueprint wholesale with an approved copy.
func (m *Manager) approveBlueprint() {
	if m.state.Blueprint == nil {
		m.generateBlueprint()
	}

	approved := *m.state.Blueprint
	now := time.Now().UTC()
	approved.Status = models.BlueprintStatusReadyForBuild
	approved.ApprovedByUser = true
	approved.ApprovalTimestamp = &now

	m.state.Blueprint = &approved
}

func (m *Manager) draftSummary() string {
	var sb strings.Builder

	sb.WriteString("Here's a first draft of your automation:\n")

	for _, step := range m.state.Steps {
		fmt.Fprintf(&sb, "\n%d. %s", step.StepNumber, step.Name)

		if step.Type == models.StepTypeAIAgent {
			sb.WriteString(" (AI-powered)")
		}
	}

	sb.WriteString("\n\nDoes this match what you had in mind? Tell me what to adjust, or share more detail about your process.")

	return sb.String()
}

func formatRecommendations(recommendations []*models.Recommendation) string {
	var sb strings.Builder

	sb.WriteString("A few recommendations before we continue:\n")

	for i, recommendation := range recommendations {
		fmt.Fprintf(&sb, "\n%d. **%s**\n   %s", i+1, recommendation.Title, recommendation.Rationale)
	}

	sb.WriteString("\n\nThese are optional and won't block your automation. Next we'll connect your integrations; send your reply when you're set.")

	return sb.String()
}

func (m *Manager) approvalPrompt() string {
	bp := m.state.Blueprint

	var sb strings.Builder

	fmt.Fprintf(&sb, "Your blueprint %q is ready for review:\n", bp.WorkflowName)

	if bp.Automation != nil {
		fmt.Fprintf(&sb, "\n- %d steps", len(bp.Automation.Steps))
		fmt.Fprintf(&sb, "\n- %d AI-powered steps", len(bp.Automation.AISteps))
		fmt.Fprintf(&sb, "\n- Trigger: %s", bp.Automation.Triggers.Type)
	}

	if bp.Workforce != nil {
		fmt.Fprintf(&sb, "\n- %d agents", len(bp.Workforce.Agents))
	}

	fmt.Fprintf(&sb, "\n- %d integrations", len(bp.Integrations))
	sb.WriteString("\n\nSay \"approve\" to finalize it, or tell me what you'd like to change.")

	return sb.String()
}

func (m *Manager) completionSummary() string {
	bp := m.state.Blueprint

	var sb strings.Builder

	fmt.Fprintf(&sb, "🎉 Your blueprint %q is approved and handed off to the Builder Agent.\n", bp.WorkflowName)

	if bp.Automation != nil {
		fmt.Fprintf(&sb, "\nIt covers %d steps", len(bp.Automation.Steps))
	}

	if bp.Workforce != nil {
		fmt.Fprintf(&sb, "\nIt covers %d agents", len(bp.Workforce.Agents))
	}

	fmt.Fprintf(&sb, " across %d integrations. You'll be notified as soon as the build is live.", len(bp.Integrations))

	return sb.String()
}
