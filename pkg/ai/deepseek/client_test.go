package deepseek

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jutt313/agentsflow/pkg/ai"
	"github.com/jutt313/agentsflow/pkg/models"
)

// newTestServer returns an httptest server that answers every chat completion
// request with the given content.
func newTestServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  DefaultModel,
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}

		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClient_Complete(t *testing.T) {
	server := newTestServer(t, "Which email provider do you use?")
	defer server.Close()

	client := newTestClient(t, server)

	history := []models.Message{
		{Role: models.RoleUser, Content: "Automate my order emails"},
	}

	response, err := client.Complete(t.Context(), "system prompt", history, map[string]any{"industry": "e-commerce"})
	require.NoError(t, err)
	assert.Equal(t, "Which email provider do you use?", response)
}

func TestClient_AnalyzeRequirements(t *testing.T) {
	analysisJSON := `{
		"industry": "e-commerce",
		"businessType": "Online Store",
		"requiredFunctions": ["Notify via Slack"],
		"automationOpportunities": ["Order notifications"],
		"requiredIntegrations": ["Shopify", "Slack"],
		"recommendedTeamSize": 2
	}`

	server := newTestServer(t, analysisJSON)
	defer server.Close()

	client := newTestClient(t, server)

	analysis, err := client.AnalyzeRequirements(t.Context(), "When a Shopify order arrives, send a Slack notification")
	require.NoError(t, err)
	assert.Equal(t, "e-commerce", analysis.Industry)
	assert.Equal(t, []string{"Shopify", "Slack"}, analysis.RequiredIntegrations)
	assert.Equal(t, 2, analysis.RecommendedTeamSize)
}

func TestClient_AnalyzeRequirements_CodeFenced(t *testing.T) {
	server := newTestServer(t, "```json\n{\"industry\": \"finance\", \"businessType\": \"Bank\"}\n```")
	defer server.Close()

	client := newTestClient(t, server)

	analysis, err := client.AnalyzeRequirements(t.Context(), "reconcile payments")
	require.NoError(t, err)
	assert.Equal(t, "finance", analysis.Industry)
}

func TestClient_AnalyzeRequirements_Unparsable(t *testing.T) {
	server := newTestServer(t, "Sure! Here's my analysis of your business...")
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.AnalyzeRequirements(t.Context(), "whatever")
	require.Error(t, err)

	var parseErr *ai.ParseError

	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Raw, "Sure!")
}

func TestClient_DiscoverIntegrationCredentials(t *testing.T) {
	server := newTestServer(t, `[{"name": "API Key", "description": "Your public API key."}]`)
	defer server.Close()

	client := newTestClient(t, server)

	credentials, err := client.DiscoverIntegrationCredentials(t.Context(), "CustomCRM")
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	assert.Equal(t, "API Key", credentials[0].Name)
}
