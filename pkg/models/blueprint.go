package models

import "time"

// BlueprintKind discriminates the two blueprint payload shapes.
type BlueprintKind string

const (
	KindAutomation  BlueprintKind = "Automation"
	KindAIWorkforce BlueprintKind = "AI Workforce"
)

// BlueprintStatus is the lifecycle state of a produced blueprint.
type BlueprintStatus string

const (
	BlueprintStatusDraft         BlueprintStatus = "draft"
	BlueprintStatusReadyForBuild BlueprintStatus = "ready_for_build"
)

// BlueprintBusinessContext is a denormalized snapshot of the session's
// business context; it never changes if the session later mutates.
type BlueprintBusinessContext struct {
	Industry     string   `json:"industry"`
	BusinessType string   `json:"business_type"`
	Platform     string   `json:"platform,omitempty"`
	Scale        string   `json:"scale,omitempty"`
	PrimaryGoals []string `json:"primary_goals"`
}

// TriggerType classifies how an automation starts.
type TriggerType string

const (
	TriggerWebhook   TriggerType = "webhook"
	TriggerScheduled TriggerType = "scheduled"
)

// WebhookTriggerSpec carries the webhook endpoint shape. URL and secret
// reference are filled in by the hosting application at deploy time.
type WebhookTriggerSpec struct {
	URL             string `json:"url,omitempty"`
	SecretRef       string `json:"secret_ref,omitempty"`
	SignatureHeader string `json:"signature_header"`
	TimestampHeader string `json:"timestamp_header"`
}

// ScheduleTriggerSpec carries the cron cadence of a scheduled automation.
type ScheduleTriggerSpec struct {
	Cron string `json:"cron"`
}

// TriggerSpec describes the entry point of an automation blueprint.
type TriggerSpec struct {
	Type     TriggerType          `json:"type"`
	Webhook  *WebhookTriggerSpec  `json:"webhook"`
	Schedule *ScheduleTriggerSpec `json:"schedule"`
}

// AutomationPayload is the step-graph shape of a blueprint.
type AutomationPayload struct {
	Steps    []*AutomationStep        `json:"steps"`
	AISteps  map[string]AIAgentConfig `json:"ai_steps"`
	Triggers TriggerSpec              `json:"triggers"`
	Mappings map[string]any           `json:"mappings"`
}

// DecisionAuthority ranks how much autonomy a workforce agent has.
type DecisionAuthority string

const (
	AuthorityHigh   DecisionAuthority = "high"
	AuthorityMedium DecisionAuthority = "medium"
	AuthorityLow    DecisionAuthority = "low"
)

// BlueprintAgent is an agent entry in a workforce blueprint.
type BlueprintAgent struct {
	AgentID           string            `json:"agent_id"   validate:"required"`
	AgentType         AgentType         `json:"agent_type" validate:"required"`
	Name              string            `json:"name"       validate:"required"`
	Role              string            `json:"role"`
	Responsibilities  []string          `json:"responsibilities"`
	Tools             []string          `json:"tools"`
	DecisionAuthority DecisionAuthority `json:"decision_authority"`
	CanModifyWorkflow bool              `json:"can_modify_workflow"`
	ReportsTo         string            `json:"reports_to,omitempty"`
	Manages           []string          `json:"manages,omitempty"`
	CollaboratesWith  []string          `json:"collaborates_with,omitempty"`
}

// CommunicationPattern describes one message flow within a workforce team.
type CommunicationPattern struct {
	PatternType string `json:"pattern_type"`
	From        string `json:"from"`
	To          string `json:"to"`
	Trigger     string `json:"trigger"`
	Flow        string `json:"flow"`
}

// WorkflowRule is a declarative rule a workforce blueprint ships with.
type WorkflowRule struct {
	RuleID    string `json:"rule_id"`
	Condition string `json:"condition"`
	Action    string `json:"action"`
	Priority  string `json:"priority"`
}

// AlertThresholds are the fixed monitoring alerting bounds.
type AlertThresholds struct {
	ResponseTimeMs     int `json:"response_time_ms"`
	ErrorRatePercent   int `json:"error_rate_percent"`
	SuccessRatePercent int `json:"success_rate_percent"`
}

// MonitoringConfig is the default health/performance monitoring block.
type MonitoringConfig struct {
	HealthCheckInterval string          `json:"health_check_interval"`
	PerformanceMetrics  []string        `json:"performance_metrics"`
	AlertThresholds     AlertThresholds `json:"alert_thresholds"`
}

// AgentCountByType breaks a team size down per agent type.
type AgentCountByType struct {
	Manager     int `json:"manager"`
	Specialist  int `json:"specialist"`
	Integration int `json:"integration"`
}

// TeamStructure summarizes a workforce team's shape.
type TeamStructure struct {
	HasManager       bool             `json:"has_manager"`
	TotalAgents      int              `json:"total_agents"`
	AgentCountByType AgentCountByType `json:"agent_count_by_type"`
}

// WorkforcePayload is the legacy team shape of a blueprint.
type WorkforcePayload struct {
	TeamStructure         TeamStructure          `json:"team_structure"`
	Agents                []*BlueprintAgent      `json:"agents"`
	CommunicationPatterns []CommunicationPattern `json:"communication_patterns"`
	WorkflowRules         []WorkflowRule         `json:"workflow_rules"`
	Monitoring            MonitoringConfig       `json:"monitoring_config"`
}

// BlueprintIntegration records one external service the automation touches.
// RequiredCredentials holds field names only, never values.
type BlueprintIntegration struct {
	IntegrationID       string   `json:"integration_id"`
	Service             string   `json:"service"`
	Purpose             string   `json:"purpose"`
	RequiredCredentials []string `json:"required_credentials"`
	EndpointsUsed       []string `json:"endpoints_used"`
	UsedBy              []string `json:"used_by"`
}

// ResiliencePolicy is the retry/timeout policy attached to every blueprint.
type ResiliencePolicy struct {
	Retries   RetryConfig `json:"retries"`
	Fallbacks []string    `json:"fallbacks"`
	Timeouts  Timeouts    `json:"timeouts"`
}

// Timeouts holds the default per-step timeout.
type Timeouts struct {
	DefaultMs int `json:"default_ms"`
}

// LoggingPolicy declares log level, redacted field names and emitted metrics.
type LoggingPolicy struct {
	Level      string   `json:"level"`
	Redactions []string `json:"redactions"`
	Metrics    []string `json:"metrics"`
}

// Position is a 2D diagram coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodePerformance carries fixed placeholder metrics shown on diagram nodes.
type NodePerformance struct {
	ResponseTime   string `json:"response_time,omitempty"`
	SuccessRate    string `json:"success_rate,omitempty"`
	Uptime         string `json:"uptime,omitempty"`
	TasksCompleted int    `json:"tasks_completed,omitempty"`
	TeamSize       int    `json:"team_size,omitempty"`
}

// DiagramNodeData is the presentational payload of a diagram node.
type DiagramNodeData struct {
	Label           string           `json:"label"`
	NodeType        string           `json:"node_type"`
	Role            string           `json:"role,omitempty"`
	Icon            string           `json:"icon"`
	Color           string           `json:"color"`
	BackgroundColor string           `json:"background_color,omitempty"`
	BorderColor     string           `json:"border_color,omitempty"`
	Status          string           `json:"status,omitempty"`
	Performance     *NodePerformance `json:"performance,omitempty"`
}

// DiagramNode is one ReactFlow node in the derived diagram.
type DiagramNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Data     DiagramNodeData `json:"data"`
}

// DiagramEdge is one ReactFlow edge in the derived diagram.
type DiagramEdge struct {
	ID       string         `json:"id"`
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Type     string         `json:"type,omitempty"`
	Animated bool           `json:"animated,omitempty"`
	Label    string         `json:"label,omitempty"`
	Style    map[string]any `json:"style,omitempty"`
}

// Diagram is the derived ReactFlow projection of a blueprint. It is purely
// presentational and regenerable deterministically from the same source data.
type Diagram struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}

// Blueprint is the terminal artifact of a design session: a versioned,
// immutable description of an automation (or legacy workforce team) for a
// separate build system to implement. Exactly one of Automation or Workforce
// is set, matching Kind.
type Blueprint struct {
	Version      string        `json:"blueprint_version"`
	Kind         BlueprintKind `json:"type"          validate:"required"`
	WorkflowID   string        `json:"workflow_id"   validate:"required"`
	WorkflowName string        `json:"workflow_name" validate:"required"`
	CreatedAt    time.Time     `json:"created_at"`
	UserID       string        `json:"user_id"`

	Business BlueprintBusinessContext `json:"business_context"`

	Automation *AutomationPayload `json:"automation,omitempty"`
	Workforce  *WorkforcePayload  `json:"workforce,omitempty"`

	Integrations []BlueprintIntegration `json:"integrations"`
	// Credentials maps credential field names to opaque markers meaning
	// "a value is supplied", never the secret itself.
	Credentials map[string]string `json:"credentials"`
	Resilience  ResiliencePolicy  `json:"resilience"`
	Logging     LoggingPolicy     `json:"logging"`
	Diagram     Diagram           `json:"reactflow_diagram"`

	Status            BlueprintStatus `json:"status"`
	ApprovedByUser    bool            `json:"approved_by_user"`
	ApprovalTimestamp *time.Time      `json:"approval_timestamp,omitempty"`
}
