// Package main provides the AgentsFlow API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/eventbus"
	"github.com/jutt313/agentsflow/pkg/events"
	"github.com/jutt313/agentsflow/pkg/persistence"
	"github.com/jutt313/agentsflow/pkg/services"
	"github.com/jutt313/agentsflow/pkg/web"
)

type API struct {
	logger        *slog.Logger
	persistence   persistence.Persistence
	client        ai.Client
	eventBus      eventbus.EventBus
	webhookSecret string
	validate      *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	client ai.Client,
	eventBus eventbus.EventBus,
	webhookSecret string,
) *API {
	return &API{
		logger:        logger,
		persistence:   persistence,
		client:        client,
		eventBus:      eventBus,
		webhookSecret: webhookSecret,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubscribeEventLogging attaches an in-process consumer that logs every
// designer lifecycle event passing through the bus.
func (a *API) SubscribeEventLogging(ctx context.Context) error {
	for _, eventType := range []events.EventType{
		events.SessionStartedEvent,
		events.StageAdvancedEvent,
		events.BlueprintGeneratedEvent,
		events.SessionCompletedEvent,
		events.TurnFailedEvent,
		events.WebhookReceivedEvent,
	} {
		if err := a.eventBus.Handle(eventType, a.logEvent(eventType)); err != nil {
			return err
		}
	}

	return a.eventBus.Subscribe(ctx)
}

func (a *API) logEvent(eventType events.EventType) eventbus.EventHandler {
	return func(ctx context.Context, event any) error {
		a.logger.InfoContext(ctx, "Designer event", "event_type", eventType, "event", event)

		return nil
	}
}

func (a *API) App() *fiber.App {
	designerService := services.NewDesigner(a.persistence, a.client, a.eventBus, a.logger)

	secrets := func(string) (string, bool) {
		if a.webhookSecret == "" {
			return "", false
		}

		return a.webhookSecret, true
	}

	handlers := web.NewAPIHandlers(designerService, a.validate, a.eventBus, secrets)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("AgentsFlow API")
	})

	s := app.Group("/sessions")
	s.Post("/", handlers.CreateSession)
	s.Get("/", handlers.ListSessions)
	s.Get("/:id", handlers.GetSession)
	s.Post("/:id/messages", handlers.SendMessage)
	s.Post("/:id/credentials", handlers.SaveCredentialReference)
	s.Get("/:id/blueprint", handlers.GetSessionBlueprint)

	b := app.Group("/blueprints")
	b.Post("/validate", handlers.ValidateBlueprint)
	b.Get("/:workflowId", handlers.GetBlueprint)

	app.Post("/webhooks/:id", handlers.ReceiveWebhook)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
