package designer

import (
	"fmt"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

// ManagerAgentID is the fixed id of the single manager agent in a managed
// team.
const ManagerAgentID = "manager-001"

// managerThreshold is the function count at which a team gets a coordinating
// manager.
const managerThreshold = 3

// DesignTeam builds the legacy AI Workforce team structure from a
// requirement analysis: one specialist per required function, plus a
// coordinating manager once the team is large enough to need one.
func DesignTeam(analysis *ai.RequirementAnalysis) *models.TeamDesign {
	functions := []string{}
	if analysis != nil {
		functions = analysis.RequiredFunctions
	}

	hasManager := len(functions) >= managerThreshold

	specialists := make([]*models.AgentDefinition, 0, len(functions))
	specialistIDs := make([]string, 0, len(functions))

	for i, function := range functions {
		id := fmt.Sprintf("specialist-%03d", i+1)
		specialistIDs = append(specialistIDs, id)

		tools := []string{"http_client"}
		if IsAIWorthy(function) {
			tools = []string{"deepseek", "http_client"}
		}

		specialist := &models.AgentDefinition{
			ID:               id,
			Type:             models.AgentTypeSpecialist,
			Name:             function + " Specialist",
			Role:             "Executes: " + function,
			Responsibilities: []string{function},
			Tools:            tools,
		}

		if hasManager {
			specialist.ReportsTo = ManagerAgentID
		}

		specialists = append(specialists, specialist)
	}

	agents := make([]*models.AgentDefinition, 0, len(specialists)+1)

	if hasManager {
		agents = append(agents, &models.AgentDefinition{
			ID:               ManagerAgentID,
			Type:             models.AgentTypeManager,
			Name:             "Operations Manager",
			Role:             "Coordinates the team and escalates failures",
			Responsibilities: []string{"Task assignment", "Progress tracking", "Escalation handling"},
			Tools:            []string{"task_board"},
			Manages:          specialistIDs,
		})
	}

	agents = append(agents, specialists...)

	communication := "sequential"
	if hasManager {
		communication = "hub_and_spoke"
	}

	return &models.TeamDesign{
		HasManager:           hasManager,
		TotalAgents:          len(agents),
		Agents:               agents,
		WorkflowPattern:      models.PatternSequential,
		CommunicationPattern: communication,
	}
}
