package models

// StepType classifies a node in an automation step graph. The set is closed;
// unknown types fall back to generic rendering in diagrams.
type StepType string

const (
	StepTypeTrigger       StepType = "trigger"
	StepTypeAction        StepType = "action"
	StepTypeCondition     StepType = "condition"
	StepTypeAIAgent       StepType = "ai-agent"
	StepTypeFilter        StepType = "filter"
	StepTypeSearch        StepType = "search"
	StepTypeLoop          StepType = "loop"
	StepTypeValidation    StepType = "validation"
	StepTypeNotification  StepType = "notification"
	StepTypeDataTransform StepType = "data-transform"
	StepTypeIntegration   StepType = "integration"
	StepTypeErrorHandler  StepType = "error-handler"
	StepTypeDelay         StepType = "delay"
	StepTypeSuccess       StepType = "success"
)

// RetryPolicy names a retry strategy for a step.
type RetryPolicy string

const (
	RetryImmediate   RetryPolicy = "immediate"
	RetryLinear      RetryPolicy = "linear"
	RetryExponential RetryPolicy = "exponential"
)

// RetryConfig controls retries for a single step.
type RetryConfig struct {
	Policy      RetryPolicy `json:"policy"       validate:"required,oneof=immediate linear exponential"`
	MaxAttempts int         `json:"max_attempts" validate:"required,min=1"`
	Backoff     string      `json:"backoff,omitempty"`
}

// AIAgentConfig specifies the AI work attached to an ai-agent step.
type AIAgentConfig struct {
	LLM    string   `json:"llm"`
	Prompt string   `json:"prompt"`
	Goal   string   `json:"goal"`
	Tools  []string `json:"tools"`
}

// MappingConfig describes field mapping between a step's input and output.
type MappingConfig struct {
	Input  map[string]any `json:"input,omitempty"`
	Output map[string]any `json:"output,omitempty"`
}

// StepConfig is the optional per-step configuration block.
type StepConfig struct {
	Integration string         `json:"integration,omitempty"`
	AIAgent     *AIAgentConfig `json:"ai_agent,omitempty"`
	Mapping     *MappingConfig `json:"mapping,omitempty"`
	Retry       *RetryConfig   `json:"retry,omitempty"`
	TimeoutMs   int            `json:"timeout_ms,omitempty"`
}

// NextStep links a step to a successor, optionally guarded by a condition.
type NextStep struct {
	StepID    string `json:"step_id" validate:"required"`
	Condition string `json:"condition,omitempty"`
}

// AutomationStep is a node in the step graph. A step with no NextSteps is
// terminal; only success and error-handler steps should be terminal.
type AutomationStep struct {
	ID          string      `json:"id"          validate:"required"`
	StepNumber  int         `json:"step_number" validate:"required,min=1"`
	Type        StepType    `json:"type"        validate:"required"`
	Name        string      `json:"name"        validate:"required"`
	Description string      `json:"description,omitempty"`
	Config      *StepConfig `json:"config,omitempty"`
	NextSteps   []NextStep  `json:"next_steps"`
}

// IsTerminal reports whether the step has no successors.
func (s *AutomationStep) IsTerminal() bool {
	return len(s.NextSteps) == 0
}
