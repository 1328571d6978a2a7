// Package deepseek implements the ai.Client contract against the DeepSeek
// chat completions API. DeepSeek speaks the OpenAI wire format, so the client
// is a thin wrapper over the go-openai SDK with a custom base URL.
package deepseek

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

const (
	DefaultBaseURL = "https://api.deepseek.com/v1"
	DefaultModel   = "deepseek-chat"

	// Temperature profiles per call type. Structured calls run cold so the
	// output stays parseable; conversation runs warm.
	conversationTemperature = 0.8
	analysisTemperature     = 0.3
	extractionTemperature   = 0.2

	conversationMaxTokens = 2000
	structuredMaxTokens   = 1000
)

const analysisSystemPrompt = `You are a business analysis expert. Analyze the business description and return a structured JSON response with:
- industry (string)
- businessType (string)
- requiredFunctions (array of strings)
- automationOpportunities (array of strings)
- requiredIntegrations (array of strings)
- recommendedTeamSize (number)

Return ONLY valid JSON, no additional text.`

const credentialSystemPrompt = `You are an expert developer. Your task is to determine the credentials required to authenticate against the named platform's API. Return a JSON array of objects, where each object has a "name" (the credential name, e.g., "API Key") and a "description" (a brief explanation of what it is).

Return ONLY the valid JSON array, with no additional text. If no credentials are known, return an empty array.`

// Client talks to the DeepSeek API. It implements ai.Client.
type Client struct {
	api   *openai.Client
	model string
}

// Config carries connection settings for the DeepSeek API.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewClient creates a DeepSeek client. APIKey is required; BaseURL and Model
// fall back to the public endpoint defaults.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek: API key is not configured")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL

	return &Client{
		api:   openai.NewClientWithConfig(apiConfig),
		model: cfg.Model,
	}, nil
}

// Complete generates a conversational response grounded on the system prompt
// and the full message history. When extraContext is non-nil it is appended
// as a trailing system message so the model sees the current session facts.
func (c *Client) Complete(ctx context.Context, systemPrompt string, history []models.Message, extraContext any) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if extraContext != nil {
		contextJSON, err := json.Marshal(extraContext)
		if err != nil {
			return "", fmt.Errorf("failed to encode conversation context: %w", err)
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Current conversation context: " + string(contextJSON),
		})
	}

	return c.complete(ctx, messages, conversationTemperature, conversationMaxTokens)
}

// AnalyzeRequirements extracts structured automation facts from a free-text
// description. A response that is not valid JSON yields *ai.ParseError.
func (c *Client) AnalyzeRequirements(ctx context.Context, freeText string) (*ai.RequirementAnalysis, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: "Analyze this business: " + freeText},
	}

	response, err := c.complete(ctx, messages, analysisTemperature, structuredMaxTokens)
	if err != nil {
		return nil, err
	}

	var analysis ai.RequirementAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &analysis); err != nil {
		return nil, &ai.ParseError{Raw: response, Err: err}
	}

	return &analysis, nil
}

// DiscoverIntegrationCredentials asks the model which credential fields a
// platform needs. Malformed output yields *ai.ParseError.
func (c *Client) DiscoverIntegrationCredentials(ctx context.Context, platform string) ([]models.DiscoveredCredential, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: credentialSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: "Platform: " + platform},
	}

	response, err := c.complete(ctx, messages, extractionTemperature, structuredMaxTokens)
	if err != nil {
		return nil, err
	}

	var credentials []models.DiscoveredCredential
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &credentials); err != nil {
		return nil, &ai.ParseError{Raw: response, Err: err}
	}

	return credentials, nil
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// sometimes wrap JSON responses in despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
