package unitofwork

import (
	"context"

	"shop-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	UnitAliasRepository() contract.UnitAliasRepository
	ConversationContextRepository() contract.ConversationContextRepository
	CartRepository() contract.CartRepository
	InteractionLogRepository() contract.InteractionLogRepository
}
