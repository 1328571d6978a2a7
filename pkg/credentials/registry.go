// Package credentials holds the static registry of credential field
// specifications for supported integration platforms. Field definitions are
// metadata only; secret values never pass through this package.
package credentials

import "strings"

// FieldType drives how a credential field is rendered and handled.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldPassword FieldType = "password"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
)

// AuthType classifies how a platform authenticates API clients.
type AuthType string

const (
	AuthOAuth  AuthType = "oauth"
	AuthAPIKey AuthType = "api-key"
	AuthBasic  AuthType = "basic"
	AuthToken  AuthType = "token"
)

// Field describes one credential input a platform requires.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
}

// Spec is the full credential specification for a platform.
type Spec struct {
	Platform          string   `json:"platform"`
	DisplayName       string   `json:"display_name"`
	AuthType          AuthType `json:"auth_type"`
	Fields            []Field  `json:"fields"`
	Scopes            []string `json:"scopes"`
	DocsURL           string   `json:"docs_url,omitempty"`
	SetupInstructions string   `json:"setup_instructions,omitempty"`
	Endpoints         []string `json:"endpoints,omitempty"`
}

// RequiredFieldNames returns the names of the spec's required fields.
func (s *Spec) RequiredFieldNames() []string {
	names := make([]string, 0, len(s.Fields))

	for _, field := range s.Fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}

	return names
}

var registry = map[string]Spec{
	"gmail": {
		Platform:    "gmail",
		DisplayName: "Gmail",
		AuthType:    AuthOAuth,
		Fields: []Field{
			{Name: "client_id", Type: FieldText, Label: "Client ID", Required: true, Description: "OAuth 2.0 Client ID from Google Cloud Console"},
			{Name: "client_secret", Type: FieldPassword, Label: "Client Secret", Required: true, Description: "OAuth 2.0 Client Secret"},
			{Name: "refresh_token", Type: FieldPassword, Label: "Refresh Token", Required: true, Description: "OAuth Refresh Token for long-term access"},
		},
		Scopes:            []string{"https://www.googleapis.com/auth/gmail.send", "https://www.googleapis.com/auth/gmail.readonly"},
		DocsURL:           "https://developers.google.com/gmail/api/guides",
		SetupInstructions: "1. Go to Google Cloud Console\n2. Create OAuth 2.0 credentials\n3. Authorize and get refresh token",
		Endpoints:         []string{"/gmail/v1/users/me/messages/send", "/gmail/v1/users/me/messages"},
	},
	"sendgrid": {
		Platform:    "sendgrid",
		DisplayName: "SendGrid",
		AuthType:    AuthAPIKey,
		Fields: []Field{
			{Name: "api_key", Type: FieldPassword, Label: "API Key", Required: true, Description: "SendGrid API Key with mail.send permission"},
			{Name: "from_email", Type: FieldEmail, Label: "From Email", Required: true, Description: "Verified sender email address"},
			{Name: "from_name", Type: FieldText, Label: "From Name", Required: false, Description: "Display name for sender"},
		},
		Scopes:            []string{"mail.send"},
		DocsURL:           "https://docs.sendgrid.com/api-reference/api-keys/create-api-keys",
		SetupInstructions: "1. Go to SendGrid Dashboard\n2. Settings > API Keys\n3. Create API Key with Mail Send permission",
		Endpoints:         []string{"/v3/mail/send"},
	},
	"shopify": {
		Platform:    "shopify",
		DisplayName: "Shopify",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "shop_name", Type: FieldText, Label: "Shop Name", Required: true, Description: "Your Shopify store name (from your-store.myshopify.com)"},
			{Name: "access_token", Type: FieldPassword, Label: "Access Token", Required: true, Description: "Shopify Admin API Access Token"},
			{Name: "api_version", Type: FieldText, Label: "API Version", Required: false, Description: "Shopify API version (default: 2024-01)"},
		},
		Scopes:            []string{"read_orders", "write_orders", "read_products", "read_customers"},
		DocsURL:           "https://shopify.dev/docs/api/admin-rest",
		SetupInstructions: "1. Shopify Admin > Apps\n2. Develop apps > Create an app\n3. Configure Admin API scopes\n4. Install app and get access token",
		Endpoints:         []string{"/admin/api/products", "/admin/api/orders", "/admin/api/inventory"},
	},
	"slack": {
		Platform:    "slack",
		DisplayName: "Slack",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "bot_token", Type: FieldPassword, Label: "Bot User OAuth Token", Required: true, Description: "Slack Bot Token starting with xoxb-"},
			{Name: "channel_id", Type: FieldText, Label: "Default Channel ID", Required: false, Description: "Default channel to post messages (optional)"},
		},
		Scopes:            []string{"chat:write", "channels:history", "channels:read"},
		DocsURL:           "https://api.slack.com/authentication/token-types",
		SetupInstructions: "1. Go to api.slack.com/apps\n2. Create New App\n3. OAuth & Permissions > Bot Token Scopes\n4. Install to Workspace",
		Endpoints:         []string{"/api/chat.postMessage", "/api/conversations.history"},
	},
	"notion": {
		Platform:    "notion",
		DisplayName: "Notion",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "api_key", Type: FieldPassword, Label: "Integration Token", Required: true, Description: "Notion Internal Integration Secret"},
			{Name: "database_id", Type: FieldText, Label: "Database ID", Required: false, Description: "Default database ID (optional)"},
		},
		Scopes:            []string{"read_content", "update_content", "insert_content"},
		DocsURL:           "https://developers.notion.com/docs/authorization",
		SetupInstructions: "1. Go to notion.so/my-integrations\n2. Create new integration\n3. Copy Internal Integration Token\n4. Share database with integration",
		Endpoints:         []string{"/v1/pages", "/v1/databases"},
	},
	"airtable": {
		Platform:    "airtable",
		DisplayName: "Airtable",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "api_key", Type: FieldPassword, Label: "Personal Access Token", Required: true, Description: "Airtable Personal Access Token"},
			{Name: "base_id", Type: FieldText, Label: "Base ID", Required: false, Description: "Default base ID (optional)"},
		},
		Scopes:            []string{"data.records:read", "data.records:write", "schema.bases:read"},
		DocsURL:           "https://airtable.com/developers/web/api/introduction",
		SetupInstructions: "1. Go to airtable.com/create/tokens\n2. Create new token\n3. Add required scopes\n4. Copy token",
		Endpoints:         []string{"/v0/{baseId}/{tableName}"},
	},
	"stripe": {
		Platform:    "stripe",
		DisplayName: "Stripe",
		AuthType:    AuthAPIKey,
		Fields: []Field{
			{Name: "secret_key", Type: FieldPassword, Label: "Secret Key", Required: true, Description: "Stripe Secret API Key (use sk_test_ for testing)"},
			{Name: "publishable_key", Type: FieldText, Label: "Publishable Key", Required: false, Description: "Stripe Publishable Key (optional, for frontend)"},
		},
		Scopes:            []string{"read_write"},
		DocsURL:           "https://stripe.com/docs/keys",
		SetupInstructions: "1. Go to Stripe Dashboard\n2. Developers > API keys\n3. Copy Secret key (use test key for testing)",
		Endpoints:         []string{"/v1/charges", "/v1/customers", "/v1/payment_intents"},
	},
	"github": {
		Platform:    "github",
		DisplayName: "GitHub",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "access_token", Type: FieldPassword, Label: "Personal Access Token", Required: true, Description: "GitHub Personal Access Token (classic)"},
			{Name: "repository", Type: FieldText, Label: "Repository", Required: false, Description: "Default repository (optional)"},
		},
		Scopes:            []string{"repo", "read:org"},
		DocsURL:           "https://docs.github.com/en/authentication",
		SetupInstructions: "1. GitHub Settings > Developer settings\n2. Personal access tokens > Tokens (classic)\n3. Generate new token with required scopes",
		Endpoints:         []string{"/repos/{owner}/{repo}/issues", "/repos/{owner}/{repo}/pulls"},
	},
	"intercom": {
		Platform:    "intercom",
		DisplayName: "Intercom",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "access_token", Type: FieldPassword, Label: "Access Token", Required: true, Description: "Intercom Access Token"},
		},
		Scopes:            []string{"read", "write"},
		DocsURL:           "https://developers.intercom.com/building-apps/docs/authentication-types",
		SetupInstructions: "1. Intercom Settings > Developers\n2. Developer Hub > New app\n3. Authentication > Create access token",
		Endpoints:         []string{"/contacts", "/conversations"},
	},
	"hubspot": {
		Platform:    "hubspot",
		DisplayName: "HubSpot",
		AuthType:    AuthToken,
		Fields: []Field{
			{Name: "access_token", Type: FieldPassword, Label: "Private App Access Token", Required: true, Description: "HubSpot Private App Access Token"},
		},
		Scopes:            []string{"crm.objects.contacts.read", "crm.objects.contacts.write", "crm.objects.deals.read"},
		DocsURL:           "https://developers.hubspot.com/docs/api/private-apps",
		SetupInstructions: "1. HubSpot Settings > Integrations > Private Apps\n2. Create private app\n3. Select required scopes\n4. Copy access token",
		Endpoints:         []string{"/crm/v3/objects/contacts", "/crm/v3/objects/deals"},
	},
	"salesforce": {
		Platform:    "salesforce",
		DisplayName: "Salesforce",
		AuthType:    AuthOAuth,
		Fields: []Field{
			{Name: "instance_url", Type: FieldURL, Label: "Instance URL", Required: true, Description: "Your Salesforce instance URL"},
			{Name: "access_token", Type: FieldPassword, Label: "Access Token", Required: true, Description: "OAuth Access Token"},
			{Name: "refresh_token", Type: FieldPassword, Label: "Refresh Token", Required: false, Description: "OAuth Refresh Token (for long-term access)"},
		},
		Scopes:            []string{"api", "refresh_token", "offline_access"},
		DocsURL:           "https://developer.salesforce.com/docs/atlas.en-us.api_rest.meta/api_rest",
		SetupInstructions: "1. Salesforce Setup > Apps > App Manager\n2. New Connected App\n3. Enable OAuth Settings\n4. Get OAuth tokens",
		Endpoints:         []string{"/services/data/v59.0/sobjects", "/services/data/v59.0/query"},
	},
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// Lookup returns the spec for a platform by exact (normalized) name.
func Lookup(platform string) (Spec, bool) {
	spec, ok := registry[normalize(platform)]

	return spec, ok
}

// Find locates a platform spec by exact or partial name match.
func Find(term string) (Spec, bool) {
	normalized := normalize(term)

	if spec, ok := registry[normalized]; ok {
		return spec, true
	}

	for key, spec := range registry {
		if strings.Contains(key, normalized) || strings.Contains(normalize(spec.DisplayName), normalized) {
			return spec, true
		}
	}

	return Spec{}, false
}

// SupportedPlatforms lists the display names of all registered platforms.
func SupportedPlatforms() []string {
	names := make([]string, 0, len(registry))

	for _, spec := range registry {
		names = append(names, spec.DisplayName)
	}

	return names
}

// DefaultCredentialFields returns the credential field names for a service,
// falling back to a single derived API-key field for unknown platforms.
func DefaultCredentialFields(service string) []string {
	if spec, ok := Find(service); ok {
		names := make([]string, 0, len(spec.Fields))
		for _, field := range spec.Fields {
			names = append(names, spec.Platform+"_"+field.Name)
		}

		return names
	}

	return []string{normalize(service) + "_api_key"}
}

// DefaultEndpoints returns the known API endpoints for a service, with a
// generic fallback for unknown platforms.
func DefaultEndpoints(service string) []string {
	if spec, ok := Find(service); ok && len(spec.Endpoints) > 0 {
		return spec.Endpoints
	}

	return []string{"/api"}
}
