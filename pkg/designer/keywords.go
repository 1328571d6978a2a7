package designer

import "strings"

// Keyword policy tables driving intent classification. Matching is
// case-insensitive substring containment; the tables are the single source
// of truth so the classification rules stay enumerable and testable.
var (
	// aiWorthyKeywords mark a required function as worth an ai-agent step
	// instead of a plain action.
	aiWorthyKeywords = []string{"summarize", "classify", "generate", "enrich", "analyze"}

	// webhookKeywords mark a goal as webhook-triggered rather than scheduled.
	webhookKeywords = []string{"webhook"}

	// completionPhrases signal the user considers the current stage's input
	// finished.
	completionPhrases = []string{"credentials saved", "saved successfully", "continue", "ready", "provided", "done"}

	// approvalPhrases signal explicit approval of the generated blueprint.
	approvalPhrases = []string{"approve", "finalize", "yes", "proceed", "let's build", "ready"}
)

func containsAny(text string, phrases []string) bool {
	lowered := strings.ToLower(text)

	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}

	return false
}

// IsAIWorthy reports whether a function name describes work suited to an
// AI-powered step.
func IsAIWorthy(functionName string) bool {
	return containsAny(functionName, aiWorthyKeywords)
}

// IsWebhookGoal reports whether a goal description indicates a webhook
// trigger.
func IsWebhookGoal(goal string) bool {
	return containsAny(goal, webhookKeywords)
}

// HasCompletionPhrase reports whether a message signals stage completion.
func HasCompletionPhrase(message string) bool {
	return containsAny(message, completionPhrases)
}

// HasApprovalPhrase reports whether a message signals blueprint approval.
func HasApprovalPhrase(message string) bool {
	return containsAny(message, approvalPhrases)
}
