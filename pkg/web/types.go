// Package web provides HTTP request and response types for the designer API.
package web

import "github.com/jutt313/agentsflow/pkg/models"

// CreateSessionRequest represents the request body for starting a design session.
type CreateSessionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// SendMessageRequest represents the request body for one conversation turn.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// SaveCredentialRequest represents the request body for attaching an opaque
// vault reference to a session. The reference is never a secret value.
type SaveCredentialRequest struct {
	Platform  string `json:"platform"  validate:"required"`
	Reference string `json:"reference" validate:"required"`
}

// ValidateBlueprintRequest wraps a blueprint submitted for validation.
type ValidateBlueprintRequest struct {
	Blueprint *models.Blueprint `json:"blueprint" validate:"required"`
}

// SessionResponse is the transcript-level view of a stored session.
type SessionResponse struct {
	SessionID string                   `json:"session_id"`
	UserID    string                   `json:"user_id"`
	Stage     models.ConversationStage `json:"stage"`
	Mode      models.DesignMode        `json:"design_mode"`
	Messages  []models.Message         `json:"messages"`
	Blueprint *models.Blueprint        `json:"blueprint,omitempty"`
}

// WebhookAckResponse acknowledges a verified webhook delivery.
type WebhookAckResponse struct {
	Received  bool   `json:"received"`
	WebhookID string `json:"webhook_id"`
}

// TransformSessionResponse maps stored conversation state onto the API view.
func TransformSessionResponse(state *models.ConversationState) SessionResponse {
	return SessionResponse{
		SessionID: state.SessionID,
		UserID:    state.UserID,
		Stage:     state.Stage,
		Mode:      state.DesignMode,
		Messages:  state.Messages,
		Blueprint: state.Blueprint,
	}
}
