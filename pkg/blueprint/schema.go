package blueprint

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jutt313/agentsflow/pkg/models"
)

// blueprintSchema is the JSON Schema every serialized blueprint document
// must satisfy, regardless of payload kind. It guards the envelope shape
// stored and handed to the build system; kind-specific integrity is the
// structural validator's job.
const blueprintSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["blueprint_version", "type", "workflow_id", "workflow_name", "created_at", "business_context", "integrations", "credentials", "resilience", "logging", "reactflow_diagram", "status"],
	"properties": {
		"blueprint_version": {"type": "string", "minLength": 1},
		"type": {"type": "string", "enum": ["Automation", "AI Workforce"]},
		"workflow_id": {"type": "string", "minLength": 1},
		"workflow_name": {"type": "string", "minLength": 1},
		"created_at": {"type": "string"},
		"user_id": {"type": "string"},
		"business_context": {
			"type": "object",
			"required": ["industry", "business_type", "primary_goals"],
			"properties": {
				"industry": {"type": "string"},
				"business_type": {"type": "string"},
				"primary_goals": {"type": "array", "items": {"type": "string"}}
			}
		},
		"automation": {
			"type": "object",
			"required": ["steps", "ai_steps", "triggers", "mappings"],
			"properties": {
				"steps": {"type": "array"},
				"ai_steps": {"type": "object"},
				"triggers": {
					"type": "object",
					"required": ["type"],
					"properties": {
						"type": {"type": "string", "enum": ["webhook", "scheduled"]}
					}
				}
			}
		},
		"workforce": {
			"type": "object",
			"required": ["team_structure", "agents"],
			"properties": {
				"agents": {"type": "array"}
			}
		},
		"integrations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["integration_id", "service", "required_credentials"],
				"properties": {
					"integration_id": {"type": "string"},
					"service": {"type": "string"},
					"required_credentials": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"credentials": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"reactflow_diagram": {
			"type": "object",
			"required": ["nodes", "edges"],
			"properties": {
				"nodes": {"type": "array"},
				"edges": {"type": "array"}
			}
		},
		"status": {"type": "string", "enum": ["draft", "ready_for_build"]}
	},
	"oneOf": [
		{"required": ["automation"]},
		{"required": ["workforce"]}
	]
}`

// ValidateSchema checks a blueprint document against the envelope schema.
// Returns the same Report shape as the structural validator so callers can
// combine both.
func ValidateSchema(bp *models.Blueprint) (Report, error) {
	schemaLoader := gojsonschema.NewStringLoader(blueprintSchema)
	documentLoader := gojsonschema.NewGoLoader(bp)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return Report{}, fmt.Errorf("blueprint schema validation failed: %w", err)
	}

	if result.Valid() {
		return Report{IsValid: true, Errors: []string{}}, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}

	return Report{IsValid: false, Errors: errs}, nil
}
