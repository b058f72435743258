package unitofwork

import (
	"context"
	"fmt"

	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ProductRepository() contract.ProductRepository {
	return implementation.NewProductRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UnitAliasRepository() contract.UnitAliasRepository {
	return implementation.NewUnitAliasRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationContextRepository() contract.ConversationContextRepository {
	return implementation.NewConversationContextRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CartRepository() contract.CartRepository {
	return implementation.NewCartRepository(u.getDB())
}

func (u *UnitOfWorkImpl) InteractionLogRepository() contract.InteractionLogRepository {
	return implementation.NewInteractionLogRepository(u.getDB())
}
