package designer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jutt313/agentsflow/pkg/models"
)

func TestFormatCredentialRequest(t *testing.T) {
	integrations := []models.DiscoveredIntegration{
		{
			Platform: "Slack",
			Credentials: []models.DiscoveredCredential{
				{Name: "bot_token", Description: "Slack Bot Token starting with xoxb-"},
			},
		},
		{
			Platform: "Shopify",
			Credentials: []models.DiscoveredCredential{
				{Name: "shop_name", Description: "Your Shopify store name"},
				{Name: "access_token", Description: "Shopify Admin API Access Token"},
			},
		},
	}

	request := FormatCredentialRequest(integrations)

	assert.Contains(t, request, "1. **Slack**")
	assert.Contains(t, request, "2. **Shopify**")
	assert.Contains(t, request, "bot_token")
	assert.Contains(t, request, "access_token")
	assert.NotContains(t, request, noCredentialInfoNotice)
}

func TestFormatCredentialRequest_UnknownPlatformNotice(t *testing.T) {
	integrations := []models.DiscoveredIntegration{
		{Platform: "ObscureCRM", Credentials: []models.DiscoveredCredential{}},
	}

	request := FormatCredentialRequest(integrations)

	assert.Contains(t, request, "ObscureCRM")
	assert.Contains(t, request, noCredentialInfoNotice)
}
