// Package web provides HTTP handlers and REST API endpoints for the designer.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/jutt313/agentsflow/pkg/eventbus"
	"github.com/jutt313/agentsflow/pkg/events"
	"github.com/jutt313/agentsflow/pkg/services"
	"github.com/jutt313/agentsflow/pkg/webhook"
)

// SecretResolver returns the signing secret for an inbound webhook id.
type SecretResolver func(webhookID string) (string, bool)

type APIHandlers struct {
	designerService *services.Designer
	validator       *validator.Validate
	publisher       eventbus.EventPublisher
	webhookSecrets  SecretResolver
}

func NewAPIHandlers(
	designerService *services.Designer,
	validator *validator.Validate,
	publisher eventbus.EventPublisher,
	webhookSecrets SecretResolver,
) *APIHandlers {
	return &APIHandlers{
		designerService: designerService,
		validator:       validator,
		publisher:       publisher,
		webhookSecrets:  webhookSecrets,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.designerService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "AgentsFlow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "AgentsFlow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) CreateSession(c fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.designerService.CreateSession(c.Context(), req.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetSession(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Session ID is required")
	}

	state, err := h.designerService.GetSession(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(TransformSessionResponse(state))
}

func (h *APIHandlers) ListSessions(c fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return badRequest(c, "user_id query parameter is required")
	}

	states, err := h.designerService.ListSessions(c.Context(), userID)
	if err != nil {
		return handleServiceError(c, err)
	}

	sessions := make([]SessionResponse, 0, len(states))
	for _, state := range states {
		sessions = append(sessions, TransformSessionResponse(state))
	}

	return c.JSON(fiber.Map{
		"sessions":    sessions,
		"total_count": len(sessions),
	})
}

func (h *APIHandlers) SendMessage(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Session ID is required")
	}

	var req SendMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.designerService.HandleMessage(c.Context(), id, req.Message)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) SaveCredentialReference(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Session ID is required")
	}

	var req SaveCredentialRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.designerService.SaveCredentialReference(c.Context(), id, req.Platform, req.Reference)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetSessionBlueprint(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Session ID is required")
	}

	bp, err := h.designerService.GetSessionBlueprint(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(bp)
}

func (h *APIHandlers) GetBlueprint(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	bp, err := h.designerService.GetBlueprint(c.Context(), workflowID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(bp)
}

func (h *APIHandlers) ValidateBlueprint(c fiber.Ctx) error {
	var req ValidateBlueprintRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if req.Blueprint == nil {
		return badRequest(c, "Blueprint is required")
	}

	report, err := h.designerService.ValidateBlueprint(req.Blueprint)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(report)
}

// ReceiveWebhook verifies an inbound webhook's HMAC signature and timestamp,
// acknowledges it, and publishes a WebhookReceived event. The payload itself
// is not executed here.
func (h *APIHandlers) ReceiveWebhook(c fiber.Ctx) error {
	webhookID := c.Params("id")
	if webhookID == "" {
		return badRequest(c, "Webhook ID is required")
	}

	secret, ok := h.webhookSecrets(webhookID)
	if !ok {
		return notFound(c, "webhook not found")
	}

	timestamp, err := webhook.ParseTimestamp(c.Get(webhook.TimestampHeader))
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := webhook.VerifyTimestamp(timestamp, time.Now()); err != nil {
		return unauthorized(c, err.Error())
	}

	body := c.Body()
	if err := webhook.Verify(secret, c.Get(webhook.SignatureHeader), timestamp, body); err != nil {
		return unauthorized(c, err.Error())
	}

	if h.publisher != nil {
		event := events.WebhookReceived{
			BaseEvent:   events.NewBaseEvent(events.WebhookReceivedEvent, ""),
			WebhookID:   webhookID,
			PayloadSize: len(body),
		}
		if err := h.publisher.Publish(c.Context(), webhookID, event); err != nil {
			return internalError(c, err)
		}
	}

	return c.JSON(WebhookAckResponse{Received: true, WebhookID: webhookID})
}
