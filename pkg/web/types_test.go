package web_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jutt313/agentsflow/pkg/models"
	"github.com/jutt313/agentsflow/pkg/web"
)

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	validate := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name    string
		request any
		wantErr bool
	}{
		{
			name:    "valid create session",
			request: web.CreateSessionRequest{UserID: "user-1"},
		},
		{
			name:    "create session missing user id",
			request: web.CreateSessionRequest{},
			wantErr: true,
		},
		{
			name:    "valid send message",
			request: web.SendMessageRequest{Message: "hello"},
		},
		{
			name:    "send message empty",
			request: web.SendMessageRequest{},
			wantErr: true,
		},
		{
			name: "valid credential reference",
			request: web.SaveCredentialRequest{
				Platform:  "shopify",
				Reference: "vault://tenants/user-1/shopify",
			},
		},
		{
			name:    "credential reference missing reference",
			request: web.SaveCredentialRequest{Platform: "shopify"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validate.Struct(tt.request)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransformSessionResponse(t *testing.T) {
	t.Parallel()

	state := &models.ConversationState{
		SessionID:  "session-1",
		UserID:     "user-1",
		Stage:      models.StageClarification,
		DesignMode: models.ModeAutomation,
		Messages: []models.Message{
			{Role: models.RoleAssistant, Content: "hello"},
			{Role: models.RoleUser, Content: "hi"},
		},
		Credentials: map[string]string{"shopify": "vault://tenants/user-1/shopify"},
	}

	response := web.TransformSessionResponse(state)

	assert.Equal(t, "session-1", response.SessionID)
	assert.Equal(t, "user-1", response.UserID)
	assert.Equal(t, models.StageClarification, response.Stage)
	assert.Equal(t, models.ModeAutomation, response.Mode)
	assert.Len(t, response.Messages, 2)
	assert.Nil(t, response.Blueprint)
}
