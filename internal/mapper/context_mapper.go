package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type ContextMapper struct{}

func NewContextMapper() *ContextMapper {
	return &ContextMapper{}
}

func (m *ContextMapper) ToEntity(c *model.ConversationContext) *entity.ConversationContext {
	if c == nil {
		return nil
	}
	return &entity.ConversationContext{
		Id:                c.Id,
		SessionId:         c.SessionId,
		ContextType:       c.ContextType,
		Payload:           json.RawMessage(c.Payload),
		QueryHash:         c.QueryHash,
		OriginalMessage:   c.OriginalMessage,
		PresentedResponse: c.PresentedResponse,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
	}
}

func (m *ContextMapper) ToEntities(contexts []*model.ConversationContext) []*entity.ConversationContext {
	entities := make([]*entity.ConversationContext, 0, len(contexts))
	for _, c := range contexts {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}

func (m *ContextMapper) ToModel(e *entity.ConversationContext) *model.ConversationContext {
	if e == nil {
		return nil
	}
	return &model.ConversationContext{
		Id:                e.Id,
		SessionId:         e.SessionId,
		ContextType:       e.ContextType,
		Payload:           datatypes.JSON(e.Payload),
		QueryHash:         e.QueryHash,
		OriginalMessage:   e.OriginalMessage,
		PresentedResponse: e.PresentedResponse,
		Active:            e.Active,
		CreatedAt:         e.CreatedAt,
	}
}
