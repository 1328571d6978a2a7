package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_NormalizesName(t *testing.T) {
	spec, ok := Lookup("Shopify")
	require.True(t, ok)
	assert.Equal(t, "shopify", spec.Platform)

	spec, ok = Lookup("HUB SPOT")
	require.True(t, ok)
	assert.Equal(t, "hubspot", spec.Platform)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("FaxMachine9000")
	assert.False(t, ok)
}

func TestFind_PartialMatch(t *testing.T) {
	spec, ok := Find("sales")
	require.True(t, ok)
	assert.Equal(t, "salesforce", spec.Platform)

	spec, ok = Find("Grid")
	require.True(t, ok)
	assert.Equal(t, "sendgrid", spec.Platform)
}

func TestSpec_RequiredFieldNames(t *testing.T) {
	spec, ok := Lookup("slack")
	require.True(t, ok)
	assert.Equal(t, []string{"bot_token"}, spec.RequiredFieldNames())
}

func TestSupportedPlatforms(t *testing.T) {
	platforms := SupportedPlatforms()
	assert.Len(t, platforms, 11)
	assert.Contains(t, platforms, "Gmail")
	assert.Contains(t, platforms, "Salesforce")
}

func TestDefaultCredentialFields_Known(t *testing.T) {
	fields := DefaultCredentialFields("Shopify")
	assert.Contains(t, fields, "shopify_access_token")
	assert.Contains(t, fields, "shopify_shop_name")
}

func TestDefaultCredentialFields_UnknownFallsBack(t *testing.T) {
	fields := DefaultCredentialFields("Custom CRM")
	assert.Equal(t, []string{"customcrm_api_key"}, fields)
}

func TestDefaultEndpoints(t *testing.T) {
	assert.Contains(t, DefaultEndpoints("Shopify"), "/admin/api/orders")
	assert.Equal(t, []string{"/api"}, DefaultEndpoints("Mystery Platform"))
}
