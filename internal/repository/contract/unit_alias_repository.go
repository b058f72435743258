package contract

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"
)

type UnitAliasRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnitAlias, error)
}
