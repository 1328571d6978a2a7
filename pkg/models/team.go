package models

// AgentType classifies an agent in the legacy AI Workforce model.
type AgentType string

const (
	AgentTypeManager     AgentType = "Manager"
	AgentTypeSpecialist  AgentType = "Specialist"
	AgentTypeIntegration AgentType = "Integration"
)

// WorkflowPattern describes how a team coordinates its work.
type WorkflowPattern string

const (
	PatternSequential  WorkflowPattern = "sequential"
	PatternParallel    WorkflowPattern = "parallel"
	PatternConditional WorkflowPattern = "conditional"
)

// AgentDefinition is one agent in an AI Workforce team.
type AgentDefinition struct {
	ID               string    `json:"id"   validate:"required"`
	Type             AgentType `json:"type" validate:"required,oneof=Manager Specialist Integration"`
	Name             string    `json:"name" validate:"required"`
	Role             string    `json:"role"`
	Responsibilities []string  `json:"responsibilities"`
	Tools            []string  `json:"tools"`
	ReportsTo        string    `json:"reports_to,omitempty"`
	Manages          []string  `json:"manages,omitempty"`
}

// TeamDesign is the legacy AI Workforce team structure: an optional single
// manager plus specialists. When HasManager is set, every specialist's
// ReportsTo is the manager's id; otherwise no agent carries one.
type TeamDesign struct {
	HasManager           bool               `json:"has_manager"`
	TotalAgents          int                `json:"total_agents"`
	Agents               []*AgentDefinition `json:"agents"`
	WorkflowPattern      WorkflowPattern    `json:"workflow_pattern"`
	CommunicationPattern string             `json:"communication_pattern"`
}

// Manager returns the team's manager agent, or nil when the team has none.
func (td *TeamDesign) Manager() *AgentDefinition {
	for _, agent := range td.Agents {
		if agent.Type == AgentTypeManager {
			return agent
		}
	}

	return nil
}

// Specialists returns the team's specialist agents in definition order.
func (td *TeamDesign) Specialists() []*AgentDefinition {
	specialists := make([]*AgentDefinition, 0, len(td.Agents))

	for _, agent := range td.Agents {
		if agent.Type == AgentTypeSpecialist {
			specialists = append(specialists, agent)
		}
	}

	return specialists
}
