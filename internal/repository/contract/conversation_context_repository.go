package contract

import (
	"context"

	"github.com/google/uuid"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"
)

type ConversationContextRepository interface {
	Create(ctx context.Context, record *entity.ConversationContext) error
	// Deactivate sets active = false on the matched rows.
	Deactivate(ctx context.Context, specs ...specification.Specification) error
	// DeleteWhere hard-deletes the matched rows. Used by dedup and
	// retention trimming.
	DeleteWhere(ctx context.Context, specs ...specification.Specification) error
	DeleteByIds(ctx context.Context, ids []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationContext, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationContext, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
