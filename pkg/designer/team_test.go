package designer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

func TestDesignTeam_SmallTeamHasNoManager(t *testing.T) {
	team := DesignTeam(&ai.RequirementAnalysis{
		RequiredFunctions: []string{"Update CRM", "Notify via Slack"},
	})

	assert.False(t, team.HasManager)
	assert.Equal(t, 2, team.TotalAgents)
	assert.Nil(t, team.Manager())

	for _, agent := range team.Agents {
		assert.Empty(t, agent.ReportsTo)
	}
}

func TestDesignTeam_LargeTeamGetsManager(t *testing.T) {
	team := DesignTeam(&ai.RequirementAnalysis{
		RequiredFunctions: []string{"Summarize inbound emails", "Update CRM", "Notify via Slack"},
	})

	require.True(t, team.HasManager)
	assert.Equal(t, 4, team.TotalAgents)

	manager := team.Manager()
	require.NotNil(t, manager)
	assert.Equal(t, ManagerAgentID, manager.ID)
	assert.Len(t, manager.Manages, 3)

	for _, specialist := range team.Specialists() {
		assert.Equal(t, ManagerAgentID, specialist.ReportsTo)
	}

	assert.Equal(t, "hub_and_spoke", team.CommunicationPattern)
}

func TestDesignTeam_AIWorthySpecialistTools(t *testing.T) {
	team := DesignTeam(&ai.RequirementAnalysis{
		RequiredFunctions: []string{"Summarize inbound emails", "Update CRM"},
	})

	specialists := team.Specialists()
	require.Len(t, specialists, 2)
	assert.Contains(t, specialists[0].Tools, "deepseek")
	assert.NotContains(t, specialists[1].Tools, "deepseek")
}

func TestDesignTeam_EmptyAnalysis(t *testing.T) {
	team := DesignTeam(nil)

	assert.False(t, team.HasManager)
	assert.Zero(t, team.TotalAgents)
	assert.Equal(t, models.PatternSequential, team.WorkflowPattern)
}
