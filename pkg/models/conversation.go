// Package models defines the core domain models for conversation-driven automation design.
package models

import "time"

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single entry in a design session transcript. History is
// append-only; insertion order is the conversation replay order.
type Message struct {
	Role    MessageRole `json:"role"    validate:"required,oneof=system user assistant"`
	Content string      `json:"content" validate:"required"`
}

// ConversationStage is the current phase of the guided design protocol.
type ConversationStage string

const (
	StageInitial         ConversationStage = "initial"
	StageDiagramDraft    ConversationStage = "diagram_draft"
	StageClarification   ConversationStage = "clarification"
	StageRecommendations ConversationStage = "recommendations"
	StageCredentials     ConversationStage = "credentials"
	StageApproval        ConversationStage = "approval"
	StageComplete        ConversationStage = "complete"
)

var stageOrder = map[ConversationStage]int{
	StageInitial:         0,
	StageDiagramDraft:    1,
	StageClarification:   2,
	StageRecommendations: 3,
	StageCredentials:     4,
	StageApproval:        5,
	StageComplete:        6,
}

// Ordinal returns the stage's position in the canonical forward sequence,
// or -1 for an unknown stage.
func (s ConversationStage) Ordinal() int {
	ord, ok := stageOrder[s]
	if !ok {
		return -1
	}

	return ord
}

// Before reports whether s comes strictly earlier than other in the
// canonical sequence.
func (s ConversationStage) Before(other ConversationStage) bool {
	return s.Ordinal() < other.Ordinal()
}

// DesignMode selects between step-graph automations and the legacy
// manager/specialist team model.
type DesignMode string

const (
	ModeAutomation  DesignMode = "Automation"
	ModeAIWorkforce DesignMode = "AI Workforce"
)

// BusinessContext holds the structured facts extracted from the user's
// free-text goal. Fields are only ever added, never removed.
type BusinessContext struct {
	Industry                string   `json:"industry,omitempty"`
	BusinessType            string   `json:"business_type,omitempty"`
	Platform                string   `json:"platform,omitempty"`
	Scale                   string   `json:"scale,omitempty"`
	PrimaryGoals            []string `json:"primary_goals,omitempty"`
	RequiredFunctions       []string `json:"required_functions,omitempty"`
	AutomationOpportunities []string `json:"automation_opportunities,omitempty"`
	RequiredIntegrations    []string `json:"required_integrations,omitempty"`
	Challenges              []string `json:"challenges,omitempty"`
}

// DiscoveredCredential is a single credential field discovered for a platform.
type DiscoveredCredential struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DiscoveredIntegration pairs a platform with the credential fields it needs.
type DiscoveredIntegration struct {
	Platform    string                 `json:"platform"`
	Credentials []DiscoveredCredential `json:"credentials"`
}

// ConversationState is the full state of one design session. The conversation
// manager is its single writer; persistence treats it as an opaque document
// with load/replace semantics only.
type ConversationState struct {
	SessionID   string            `json:"session_id" validate:"required"`
	UserID      string            `json:"user_id"    validate:"required"`
	Stage       ConversationStage `json:"stage"      validate:"required"`
	DesignMode  DesignMode        `json:"design_mode,omitempty"`
	Messages    []Message         `json:"messages"`
	Business    *BusinessContext  `json:"business_context,omitempty"`
	Steps       []*AutomationStep `json:"automation_steps,omitempty"`
	Team        *TeamDesign       `json:"team_design,omitempty"`
	// Credentials maps platform names to opaque credential references held
	// by an external vault. Never plaintext secret values.
	Credentials     map[string]string       `json:"credentials,omitempty"`
	Integrations    []DiscoveredIntegration `json:"discovered_integrations,omitempty"`
	Recommendations []*Recommendation       `json:"recommendations,omitempty"`
	Blueprint       *Blueprint              `json:"blueprint,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
