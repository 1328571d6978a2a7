package blueprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/jutt313/agentsflow/pkg/models"
)

// palette groups the three colors a diagram is rendered with.
type palette struct {
	Primary   string
	Secondary string
	Accent    string
}

// Industry color palettes. Selection is a deterministic keyword match on the
// industry string with a neutral default.
var industryPalettes = map[string]palette{
	"e-commerce": {Primary: "#3b82f6", Secondary: "#1d4ed8", Accent: "#60a5fa"},
	"healthcare": {Primary: "#10b981", Secondary: "#059669", Accent: "#34d399"},
	"finance":    {Primary: "#8b5cf6", Secondary: "#7c3aed", Accent: "#a78bfa"},
	"education":  {Primary: "#f59e0b", Secondary: "#d97706", Accent: "#fbbf24"},
}

var neutralPalette = palette{Primary: "#6b7280", Secondary: "#4b5563", Accent: "#9ca3af"}

func paletteFor(industry string) palette {
	normalized := strings.ToLower(industry)

	for keyword, colors := range industryPalettes {
		if strings.Contains(normalized, keyword) {
			return colors
		}
	}

	return neutralPalette
}

// Node icon lookup keyed by step type, with a generic fallback for unknown
// types.
var stepIcons = map[models.StepType]string{
	models.StepTypeTrigger:       "🚀",
	models.StepTypeCondition:     "❓",
	models.StepTypeAction:        "⚡",
	models.StepTypeFilter:        "🔍",
	models.StepTypeAIAgent:       "🤖",
	models.StepTypeSearch:        "🔎",
	models.StepTypeLoop:          "🔄",
	models.StepTypeValidation:    "✅",
	models.StepTypeNotification:  "📢",
	models.StepTypeDataTransform: "🔄",
	models.StepTypeIntegration:   "🔗",
	models.StepTypeErrorHandler:  "⚠️",
	models.StepTypeDelay:         "⏱️",
	models.StepTypeSuccess:       "🎉",
}

const fallbackIcon = "🎯"

// Layout constants for the left-to-right automation diagram.
const (
	automationStartX    = 50.0
	automationStepX     = 100.0
	automationSpacing   = 250.0
	automationY         = 200.0
	workforceSpacing    = 200.0
	workforceRowSpacing = 150.0
	managerX            = 400.0
	managerY            = 50.0
	specialistStartY    = 200.0
)

func iconFor(stepType models.StepType) string {
	if icon, ok := stepIcons[stepType]; ok {
		return icon
	}

	return fallbackIcon
}

// automationDiagram lays the step graph out left to right, one node per step
// spaced at a fixed interval, bracketed by synthetic start and end nodes.
// Output is fully determined by the inputs; placeholder metrics are fixed
// values so regeneration is idempotent.
func automationDiagram(steps []*models.AutomationStep, colors palette) models.Diagram {
	nodes := make([]models.DiagramNode, 0, len(steps)+2)
	edges := make([]models.DiagramEdge, 0, len(steps)+1)

	nodes = append(nodes, models.DiagramNode{
		ID:       "start-trigger",
		Type:     "trigger-node",
		Position: models.Position{X: automationStartX, Y: automationY},
		Data: models.DiagramNodeData{
			Label:           "Start",
			NodeType:        string(models.StepTypeTrigger),
			Icon:            iconFor(models.StepTypeTrigger),
			Color:           colors.Primary,
			BackgroundColor: colors.Primary + "20",
			BorderColor:     colors.Primary,
			Status:          "ready",
		},
	})

	for i, step := range steps {
		nodes = append(nodes, models.DiagramNode{
			ID:       step.ID,
			Type:     "automation-node",
			Position: models.Position{X: automationStepX + float64(i)*automationSpacing, Y: automationY},
			Data: models.DiagramNodeData{
				Label:           step.Name,
				NodeType:        string(step.Type),
				Role:            step.Description,
				Icon:            iconFor(step.Type),
				Color:           colors.Primary,
				BackgroundColor: colors.Accent + "20",
				BorderColor:     colors.Secondary,
				Status:          "active",
				Performance: &models.NodePerformance{
					ResponseTime: "2.3s",
					SuccessRate:  "98.5%",
					Uptime:       "99.9%",
				},
			},
		})

		if i < len(steps)-1 {
			edges = append(edges, models.DiagramEdge{
				ID:       fmt.Sprintf("flow-%s-%s", step.ID, steps[i+1].ID),
				Source:   step.ID,
				Target:   steps[i+1].ID,
				Type:     "smoothstep",
				Animated: true,
				Label:    "Data Flow",
				Style: map[string]any{
					"stroke":          colors.Secondary,
					"strokeWidth":     3,
					"strokeDasharray": "5,5",
				},
			})
		}
	}

	endX := automationStepX + float64(len(steps))*automationSpacing
	nodes = append(nodes, models.DiagramNode{
		ID:       "end-success",
		Type:     "success-node",
		Position: models.Position{X: endX, Y: automationY},
		Data: models.DiagramNodeData{
			Label:           "Complete",
			NodeType:        string(models.StepTypeSuccess),
			Icon:            iconFor(models.StepTypeSuccess),
			Color:           colors.Secondary,
			BackgroundColor: colors.Secondary + "20",
			BorderColor:     colors.Secondary,
			Status:          "completed",
		},
	})

	if len(steps) > 0 {
		edges = append([]models.DiagramEdge{{
			ID:       "start-flow",
			Source:   "start-trigger",
			Target:   steps[0].ID,
			Type:     "smoothstep",
			Animated: true,
			Label:    "Initiate",
			Style:    map[string]any{"stroke": colors.Primary, "strokeWidth": 3},
		}}, edges...)

		edges = append(edges, models.DiagramEdge{
			ID:       "end-flow",
			Source:   steps[len(steps)-1].ID,
			Target:   "end-success",
			Type:     "smoothstep",
			Animated: true,
			Label:    "Complete",
			Style:    map[string]any{"stroke": colors.Secondary, "strokeWidth": 3},
		})
	}

	return models.Diagram{Nodes: nodes, Edges: edges}
}

// workforceDiagram renders the legacy team shapes: hub-and-spoke with the
// manager centered on top, or a left-to-right chain when no manager exists.
func workforceDiagram(agents []*models.BlueprintAgent, hasManager bool, colors palette) models.Diagram {
	if hasManager {
		return managedTeamDiagram(agents, colors)
	}

	return flatTeamDiagram(agents, colors)
}

func managedTeamDiagram(agents []*models.BlueprintAgent, colors palette) models.Diagram {
	var manager *models.BlueprintAgent

	specialists := make([]*models.BlueprintAgent, 0, len(agents))

	for _, agent := range agents {
		if agent.AgentType == models.AgentTypeManager && manager == nil {
			manager = agent
		} else if agent.AgentType == models.AgentTypeSpecialist {
			specialists = append(specialists, agent)
		}
	}

	nodes := make([]models.DiagramNode, 0, len(agents))
	edges := make([]models.DiagramEdge, 0, len(specialists))

	if manager == nil {
		return flatTeamDiagram(agents, colors)
	}

	nodes = append(nodes, models.DiagramNode{
		ID:       manager.AgentID,
		Type:     "manager-node",
		Position: models.Position{X: managerX, Y: managerY},
		Data: models.DiagramNodeData{
			Label:           manager.Name,
			NodeType:        "manager",
			Role:            manager.Role,
			Icon:            "👔",
			Color:           colors.Primary,
			BackgroundColor: colors.Primary + "20",
			BorderColor:     colors.Primary,
			Status:          "active",
			Performance: &models.NodePerformance{
				ResponseTime: "1.8s",
				SuccessRate:  "99.2%",
				TeamSize:     len(specialists),
			},
		},
	})

	// Specialists sit in a roughly square grid below the manager.
	cols := int(math.Ceil(math.Sqrt(float64(len(specialists)))))
	if cols == 0 {
		cols = 1
	}

	startX := managerX - float64(cols-1)*workforceSpacing/2

	for i, specialist := range specialists {
		row := i / cols
		col := i % cols

		nodes = append(nodes, models.DiagramNode{
			ID:       specialist.AgentID,
			Type:     "specialist-node",
			Position: models.Position{X: startX + float64(col)*workforceSpacing, Y: specialistStartY + float64(row)*workforceRowSpacing},
			Data:     specialistNodeData(specialist, colors),
		})

		edges = append(edges, models.DiagramEdge{
			ID:       fmt.Sprintf("manage-%s-%s", manager.AgentID, specialist.AgentID),
			Source:   manager.AgentID,
			Target:   specialist.AgentID,
			Type:     "smoothstep",
			Animated: true,
			Label:    "Manages",
			Style: map[string]any{
				"stroke":          colors.Primary,
				"strokeWidth":     2,
				"strokeDasharray": "10,5",
			},
		})
	}

	return models.Diagram{Nodes: nodes, Edges: edges}
}

func flatTeamDiagram(agents []*models.BlueprintAgent, colors palette) models.Diagram {
	nodes := make([]models.DiagramNode, 0, len(agents))
	edges := make([]models.DiagramEdge, 0, len(agents))

	for i, agent := range agents {
		nodes = append(nodes, models.DiagramNode{
			ID:       agent.AgentID,
			Type:     "specialist-node",
			Position: models.Position{X: automationStepX + float64(i)*workforceSpacing, Y: automationY},
			Data:     specialistNodeData(agent, colors),
		})

		if i < len(agents)-1 {
			edges = append(edges, models.DiagramEdge{
				ID:       fmt.Sprintf("collaborate-%s-%s", agent.AgentID, agents[i+1].AgentID),
				Source:   agent.AgentID,
				Target:   agents[i+1].AgentID,
				Type:     "smoothstep",
				Animated: true,
				Label:    "Collaborates",
				Style: map[string]any{
					"stroke":          colors.Accent,
					"strokeWidth":     2,
					"strokeDasharray": "5,5",
				},
			})
		}
	}

	return models.Diagram{Nodes: nodes, Edges: edges}
}

func specialistNodeData(agent *models.BlueprintAgent, colors palette) models.DiagramNodeData {
	return models.DiagramNodeData{
		Label:           agent.Name,
		NodeType:        "specialist",
		Role:            agent.Role,
		Icon:            fallbackIcon,
		Color:           colors.Secondary,
		BackgroundColor: colors.Secondary + "20",
		BorderColor:     colors.Secondary,
		Status:          "active",
		Performance: &models.NodePerformance{
			ResponseTime:   "2.1s",
			SuccessRate:    "97.8%",
			TasksCompleted: 75,
		},
	}
}
