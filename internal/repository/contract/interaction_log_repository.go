package contract

import (
	"context"

	"github.com/google/uuid"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"
)

type InteractionLogRepository interface {
	Create(ctx context.Context, log *entity.InteractionLog) error
	// AttachFeedback records a thumbs-up/down verdict and the expected
	// answer on an existing interaction.
	AttachFeedback(ctx context.Context, id uuid.UUID, feedbackType string, expected []byte) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InteractionLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionLog, error)
}
