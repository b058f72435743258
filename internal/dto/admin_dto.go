package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type InteractionLogResponse struct {
	Id           uuid.UUID       `json:"id"`
	SessionId    string          `json:"session_id"`
	UserMessage  string          `json:"user_message"`
	ResponseJSON json.RawMessage `json:"response_json,omitempty"`
	FeedbackType string          `json:"feedback_type,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type AliasRefreshResponse struct {
	Aliases int `json:"aliases"`
}
