package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InteractionLog records one handled turn for auditing and feedback.
type InteractionLog struct {
	Id               uuid.UUID
	SessionId        string
	UserMessage      string
	ResponseJSON     json.RawMessage
	FeedbackType     string
	FeedbackExpected json.RawMessage
	CreatedAt        time.Time
}
