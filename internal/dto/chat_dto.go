package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ChatMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
	// MessageId deduplicates webhook retries; optional for direct API use.
	MessageId string `json:"message_id"`
	BranchId  int    `json:"branch_id"`
}

type ChatMessageResponse struct {
	SessionId        string    `json:"session_id"`
	Reply            string    `json:"reply"`
	Action           string    `json:"action"`
	ClassifierSource string    `json:"classifier_source,omitempty"`
	InteractionId    uuid.UUID `json:"interaction_id,omitempty"`
	Duplicate        bool      `json:"duplicate,omitempty"`
}

type FeedbackRequest struct {
	InteractionId string          `json:"interaction_id" validate:"required,uuid"`
	FeedbackType  string          `json:"feedback_type" validate:"required,oneof=positive negative"`
	Expected      json.RawMessage `json:"expected"`
}

type RecentContextResponse struct {
	ContextType     string          `json:"context_type"`
	OriginalMessage string          `json:"original_message"`
	Payload         json.RawMessage `json:"payload"`
	CreatedAt       string          `json:"created_at"`
}
