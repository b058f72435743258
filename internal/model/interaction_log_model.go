package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InteractionLog struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        string         `gorm:"type:text;not null;index"`
	UserMessage      string         `gorm:"type:text;not null"`
	ResponseJSON     datatypes.JSON `gorm:"type:jsonb"`
	FeedbackType     string         `gorm:"type:text"`
	FeedbackExpected datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index"`
}

func (InteractionLog) TableName() string {
	return "interaction_logs"
}
