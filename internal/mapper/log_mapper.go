package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type LogMapper struct{}

func NewLogMapper() *LogMapper {
	return &LogMapper{}
}

func (m *LogMapper) ToEntity(l *model.InteractionLog) *entity.InteractionLog {
	if l == nil {
		return nil
	}
	return &entity.InteractionLog{
		Id:               l.Id,
		SessionId:        l.SessionId,
		UserMessage:      l.UserMessage,
		ResponseJSON:     json.RawMessage(l.ResponseJSON),
		FeedbackType:     l.FeedbackType,
		FeedbackExpected: json.RawMessage(l.FeedbackExpected),
		CreatedAt:        l.CreatedAt,
	}
}

func (m *LogMapper) ToModel(e *entity.InteractionLog) *model.InteractionLog {
	if e == nil {
		return nil
	}
	return &model.InteractionLog{
		Id:               e.Id,
		SessionId:        e.SessionId,
		UserMessage:      e.UserMessage,
		ResponseJSON:     datatypes.JSON(e.ResponseJSON),
		FeedbackType:     e.FeedbackType,
		FeedbackExpected: datatypes.JSON(e.FeedbackExpected),
		CreatedAt:        e.CreatedAt,
	}
}
