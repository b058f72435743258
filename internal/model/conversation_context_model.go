package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationContext struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         string         `gorm:"type:text;not null;index:idx_ctx_session_type,priority:1"`
	ContextType       string         `gorm:"type:text;not null;index:idx_ctx_session_type,priority:2"`
	Payload           datatypes.JSON `gorm:"type:jsonb;not null"`
	QueryHash         string         `gorm:"type:text;index"`
	OriginalMessage   string         `gorm:"type:text;not null"`
	PresentedResponse string         `gorm:"type:text"`
	Active            bool           `gorm:"not null;default:true"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index"`
}

func (ConversationContext) TableName() string {
	return "conversation_contexts"
}
