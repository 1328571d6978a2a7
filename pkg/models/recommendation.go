package models

// RecommendationType categorizes a proposed automation improvement.
type RecommendationType string

const (
	RecommendationAIAgent RecommendationType = "ai-agent"
	RecommendationRetry   RecommendationType = "retry"
	RecommendationAlert   RecommendationType = "alert"
)

// Recommendation is a single advisory improvement to the step graph. The
// designer presents recommendations once; they are never merged back into
// the graph automatically.
type Recommendation struct {
	Title      string             `json:"title"     validate:"required"`
	Rationale  string             `json:"rationale" validate:"required"`
	Type       RecommendationType `json:"type"      validate:"required"`
	StepNumber int                `json:"step_number,omitempty"`
}
