package designer

import (
	"fmt"
	"strings"

	"github.com/jutt313/agentsflow/pkg/models"
)

// noCredentialInfoNotice is shown for a platform whose credential fields
// could not be determined, so the platform is never silently omitted.
const noCredentialInfoNotice = "could not automatically determine the required credentials for this platform. Please consult the platform's API documentation."

// FormatCredentialRequest renders a numbered, human-readable request
// enumerating the credential fields each discovered integration needs.
func FormatCredentialRequest(integrations []models.DiscoveredIntegration) string {
	var sb strings.Builder

	sb.WriteString("To connect your automation, I need credentials for the following platforms:\n")

	for i, integration := range integrations {
		fmt.Fprintf(&sb, "\n%d. **%s**\n", i+1, integration.Platform)

		if len(integration.Credentials) == 0 {
			fmt.Fprintf(&sb, "   I %s\n", noCredentialInfoNotice)

			continue
		}

		for _, credential := range integration.Credentials {
			fmt.Fprintf(&sb, "   - %s: %s\n", credential.Name, credential.Description)
		}
	}

	sb.WriteString("\nOnce you've saved them in your credential vault, say \"credentials saved\" and we'll continue.")

	return sb.String()
}
