// Package blueprint turns finalized conversation state into versioned,
// immutable automation blueprints: the step graph or team payload, discovered
// integrations, default resilience/logging policy, and a derived ReactFlow
// diagram. Generation is a pure transformation; no state is retained between
// calls.
package blueprint

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/jutt313/agentsflow/pkg/credentials"
	"github.com/jutt313/agentsflow/pkg/models"
)

const blueprintVersion = "1.0"

// DefaultSchedule is the cron cadence applied to scheduled triggers until
// the user configures one.
const DefaultSchedule = "0 * * * *"

// Webhook signature headers stamped into webhook trigger specs. They match
// the ingestion endpoint's verification headers.
const (
	SignatureHeader = "X-AF-Signature"
	TimestampHeader = "X-AF-Timestamp"
)

// Fixed default resilience and logging policies. These are documented
// defaults, not configurable inputs of the compiler core.
func defaultResilience() models.ResiliencePolicy {
	return models.ResiliencePolicy{
		Retries: models.RetryConfig{
			Policy:      models.RetryExponential,
			MaxAttempts: 3,
			Backoff:     "2s",
		},
		Fallbacks: []string{},
		Timeouts:  models.Timeouts{DefaultMs: 30000},
	}
}

func defaultLogging() models.LoggingPolicy {
	return models.LoggingPolicy{
		Level:      "info",
		Redactions: []string{"password", "secret", "token"},
		Metrics:    []string{"success_rate", "latency", "retry_count"},
	}
}

// GenerateAutomation produces an automation-shaped blueprint from the step
// graph. Every call assigns a fresh workflow id and timestamp; identical
// inputs never reuse ids across regenerations.
func GenerateAutomation(business *models.BusinessContext, steps []*models.AutomationStep, creds map[string]string, userID string) *models.Blueprint {
	if business == nil {
		business = &models.BusinessContext{}
	}

	now := time.Now().UTC()

	bp := &models.Blueprint{
		Version:      blueprintVersion,
		Kind:         models.KindAutomation,
		WorkflowID:   uuid.NewString(),
		WorkflowName: workflowName(business),
		CreatedAt:    now,
		UserID:       userID,
		Business:     snapshotBusiness(business),
		Automation: &models.AutomationPayload{
			Steps:    steps,
			AISteps:  deriveAISteps(steps),
			Triggers: deriveTriggers(steps),
			Mappings: map[string]any{},
		},
		Integrations: deriveIntegrations(business.RequiredIntegrations, functionalStepIDs(steps)),
		Credentials:  copyCredentials(creds),
		Resilience:   defaultResilience(),
		Logging:      defaultLogging(),
		Status:       models.BlueprintStatusDraft,
	}

	bp.Diagram = automationDiagram(steps, paletteFor(business.Industry))

	return bp
}

// GenerateWorkforce produces a legacy team-shaped blueprint. Workforce
// blueprints are emitted at approval time, so they carry ready_for_build
// status and an approval timestamp.
func GenerateWorkforce(business *models.BusinessContext, team *models.TeamDesign, creds map[string]string, userID string) *models.Blueprint {
	if business == nil {
		business = &models.BusinessContext{}
	}

	now := time.Now().UTC()
	agents := convertAgents(team)

	bp := &models.Blueprint{
		Version:      blueprintVersion,
		Kind:         models.KindAIWorkforce,
		WorkflowID:   uuid.NewString(),
		WorkflowName: workflowName(business),
		CreatedAt:    now,
		UserID:       userID,
		Business:     snapshotBusiness(business),
		Workforce: &models.WorkforcePayload{
			TeamStructure: models.TeamStructure{
				HasManager:       team.HasManager,
				TotalAgents:      team.TotalAgents,
				AgentCountByType: countAgents(agents),
			},
			Agents:                agents,
			CommunicationPatterns: communicationPatterns(agents, team.HasManager),
			WorkflowRules:         workflowRules(team.HasManager),
			Monitoring: models.MonitoringConfig{
				HealthCheckInterval: "30s",
				PerformanceMetrics:  []string{"response_time", "success_rate", "task_completion_rate", "error_rate"},
				AlertThresholds: models.AlertThresholds{
					ResponseTimeMs:     5000,
					ErrorRatePercent:   5,
					SuccessRatePercent: 95,
				},
			},
		},
		Integrations:      deriveIntegrations(business.RequiredIntegrations, nonManagerAgentIDs(agents)),
		Credentials:       copyCredentials(creds),
		Resilience:        defaultResilience(),
		Logging:           defaultLogging(),
		Status:            models.BlueprintStatusReadyForBuild,
		ApprovedByUser:    true,
		ApprovalTimestamp: &now,
	}

	bp.Diagram = workforceDiagram(agents, team.HasManager, paletteFor(business.Industry))

	return bp
}

func workflowName(business *models.BusinessContext) string {
	businessType := business.BusinessType
	if businessType == "" {
		businessType = "Custom"
	}

	return businessType + " Automation"
}

func snapshotBusiness(business *models.BusinessContext) models.BlueprintBusinessContext {
	industry := business.Industry
	if industry == "" {
		industry = "General"
	}

	businessType := business.BusinessType
	if businessType == "" {
		businessType = "Custom"
	}

	goals := business.PrimaryGoals
	if goals == nil {
		goals = []string{}
	}

	return models.BlueprintBusinessContext{
		Industry:     industry,
		BusinessType: businessType,
		Platform:     business.Platform,
		Scale:        business.Scale,
		PrimaryGoals: goals,
	}
}

// deriveAISteps builds the ai_steps map keyed by step id, populated only for
// ai-agent steps. Prompt defaults to "Execute <name>" and goal to the step
// description (falling back to the name) when not explicitly configured.
func deriveAISteps(steps []*models.AutomationStep) map[string]models.AIAgentConfig {
	aiSteps := make(map[string]models.AIAgentConfig)

	for _, step := range steps {
		if step.Type != models.StepTypeAIAgent {
			continue
		}

		cfg := models.AIAgentConfig{
			LLM:    "deepseek",
			Prompt: "Execute " + step.Name,
			Goal:   step.Name,
			Tools:  []string{},
		}

		if step.Description != "" {
			cfg.Goal = step.Description
		}

		if step.Config != nil && step.Config.AIAgent != nil {
			configured := step.Config.AIAgent
			if configured.LLM != "" {
				cfg.LLM = configured.LLM
			}

			if configured.Prompt != "" {
				cfg.Prompt = configured.Prompt
			}

			if configured.Goal != "" {
				cfg.Goal = configured.Goal
			}

			if len(configured.Tools) > 0 {
				cfg.Tools = configured.Tools
			}
		}

		aiSteps[step.ID] = cfg
	}

	return aiSteps
}

// deriveTriggers classifies the trigger from the first step's name. The
// capitalized "Webhook" substring check is a compatibility heuristic, not a
// strict classification.
func deriveTriggers(steps []*models.AutomationStep) models.TriggerSpec {
	if len(steps) > 0 && strings.Contains(steps[0].Name, "Webhook") {
		return models.TriggerSpec{
			Type: models.TriggerWebhook,
			Webhook: &models.WebhookTriggerSpec{
				SignatureHeader: SignatureHeader,
				TimestampHeader: TimestampHeader,
			},
		}
	}

	return models.TriggerSpec{
		Type:     models.TriggerScheduled,
		Schedule: &models.ScheduleTriggerSpec{Cron: DefaultSchedule},
	}
}

func deriveIntegrations(services []string, usedBy []string) []models.BlueprintIntegration {
	integrations := make([]models.BlueprintIntegration, 0, len(services))

	for i, service := range services {
		integrations = append(integrations, models.BlueprintIntegration{
			IntegrationID:       fmt.Sprintf("int-%03d", i+1),
			Service:             service,
			Purpose:             service + " integration",
			RequiredCredentials: credentials.DefaultCredentialFields(service),
			EndpointsUsed:       credentials.DefaultEndpoints(service),
			UsedBy:              usedBy,
		})
	}

	return integrations
}

func functionalStepIDs(steps []*models.AutomationStep) []string {
	ids := make([]string, 0, len(steps))

	for _, step := range steps {
		if step.Type == models.StepTypeTrigger || step.Type == models.StepTypeSuccess {
			continue
		}

		ids = append(ids, step.ID)
	}

	return ids
}

func nonManagerAgentIDs(agents []*models.BlueprintAgent) []string {
	ids := make([]string, 0, len(agents))

	for _, agent := range agents {
		if agent.AgentType == models.AgentTypeManager {
			continue
		}

		ids = append(ids, agent.AgentID)
	}

	return ids
}

// copyCredentials snapshots the credential reference map. Values are opaque
// vault references, never secret material.
func copyCredentials(creds map[string]string) map[string]string {
	copied := make(map[string]string, len(creds))

	for key, ref := range creds {
		copied[key] = ref
	}

	return copied
}

func convertAgents(team *models.TeamDesign) []*models.BlueprintAgent {
	agents := make([]*models.BlueprintAgent, 0, len(team.Agents))

	for _, agent := range team.Agents {
		authority := models.AuthorityMedium
		if agent.Type == models.AgentTypeManager {
			authority = models.AuthorityHigh
		}

		converted := &models.BlueprintAgent{
			AgentID:           agent.ID,
			AgentType:         agent.Type,
			Name:              agent.Name,
			Role:              agent.Role,
			Responsibilities:  agent.Responsibilities,
			Tools:             agent.Tools,
			DecisionAuthority: authority,
			CanModifyWorkflow: agent.Type == models.AgentTypeManager,
			ReportsTo:         agent.ReportsTo,
			Manages:           agent.Manages,
		}

		if !team.HasManager {
			converted.CollaboratesWith = []string{}
		}

		agents = append(agents, converted)
	}

	return agents
}

func countAgents(agents []*models.BlueprintAgent) models.AgentCountByType {
	var counts models.AgentCountByType

	for _, agent := range agents {
		switch agent.AgentType {
		case models.AgentTypeManager:
			counts.Manager++
		case models.AgentTypeSpecialist:
			counts.Specialist++
		case models.AgentTypeIntegration:
			counts.Integration++
		}
	}

	return counts
}

func communicationPatterns(agents []*models.BlueprintAgent, hasManager bool) []models.CommunicationPattern {
	patterns := make([]models.CommunicationPattern, 0, len(agents))

	if hasManager {
		var manager *models.BlueprintAgent

		for _, agent := range agents {
			if agent.AgentType == models.AgentTypeManager {
				manager = agent

				break
			}
		}

		if manager == nil {
			return patterns
		}

		for _, agent := range agents {
			if agent.AgentType != models.AgentTypeSpecialist {
				continue
			}

			patterns = append(patterns, models.CommunicationPattern{
				PatternType: "request_response",
				From:        manager.AgentID,
				To:          agent.AgentID,
				Trigger:     "task_assignment",
				Flow:        fmt.Sprintf("%s assigns task -> %s executes -> Reports back", manager.Name, agent.Name),
			})
		}

		return patterns
	}

	for i := 0; i < len(agents)-1; i++ {
		patterns = append(patterns, models.CommunicationPattern{
			PatternType: "request_response",
			From:        agents[i].AgentID,
			To:          agents[i+1].AgentID,
			Trigger:     "task_completion",
			Flow:        fmt.Sprintf("%s completes -> %s starts", agents[i].Name, agents[i+1].Name),
		})
	}

	return patterns
}

func workflowRules(hasManager bool) []models.WorkflowRule {
	rules := make([]models.WorkflowRule, 0, 2)

	if hasManager {
		rules = append(rules, models.WorkflowRule{
			RuleID:    "rule-001",
			Condition: `task_complexity == "high" OR error_count > 3`,
			Action:    "escalate_to_manager",
			Priority:  "high",
		})
	}

	rules = append(rules, models.WorkflowRule{
		RuleID:    "rule-002",
		Condition: "response_time > 10000ms",
		Action:    "trigger_performance_alert",
		Priority:  "medium",
	})

	return rules
}

// NormalizeSchedule validates a cron expression for a scheduled trigger.
// An empty expression yields the default hourly cadence.
func NormalizeSchedule(expr string) (string, error) {
	if expr == "" {
		return DefaultSchedule, nil
	}

	if _, err := cron.ParseStandard(expr); err != nil {
		return "", fmt.Errorf("invalid schedule expression %q: %w", expr, err)
	}

	return expr, nil
}
