package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/jutt313/agentsflow/pkg/ai/deepseek"
	"github.com/jutt313/agentsflow/pkg/cmd"
	"github.com/jutt313/agentsflow/pkg/log"
	"github.com/jutt313/agentsflow/pkg/otelhelper"
)

const defaultPort = 9091

func main() {
	command := &cli.Command{
		Name:                  "agentsflow-api",
		Usage:                 "Design automation blueprints through guided conversation",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Persistence URL (file://<path> or redis://<host>)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:     "deepseek-api-key",
				Usage:    "DeepSeek API key used by the designer",
				Required: true,
				Sources:  cli.EnvVars("DEEPSEEK_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "deepseek-base-url",
				Usage:   "Override the DeepSeek API base URL",
				Sources: cli.EnvVars("DEEPSEEK_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "webhook-secret",
				Usage:   "Shared secret for inbound webhook signatures",
				Sources: cli.EnvVars("WEBHOOK_SECRET"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("api")
			logger.InfoContext(ctx, "Initializing AgentsFlow API")

			if command.Bool("tracing") {
				provider, err := otelhelper.NewTracerProvider(ctx, "agentsflow-api")
				if err != nil {
					return err
				}

				defer func() {
					if err := provider.Shutdown(ctx); err != nil {
						logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			store, err := cmd.NewPersistence(command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			client, err := deepseek.NewClient(deepseek.Config{
				APIKey:  command.String("deepseek-api-key"),
				BaseURL: command.String("deepseek-base-url"),
			})
			if err != nil {
				return err
			}

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			api := NewAPI(
				logger,
				store,
				client,
				eventBus,
				command.String("webhook-secret"),
			)

			if err := api.SubscribeEventLogging(ctx); err != nil {
				return err
			}

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
