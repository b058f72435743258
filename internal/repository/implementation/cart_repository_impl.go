package implementation

import (
	"context"
	"errors"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CartMapper
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &CartRepositoryImpl{
		db:     db,
		mapper: mapper.NewCartMapper(),
	}
}

func (r *CartRepositoryImpl) GetOrCreateOpen(ctx context.Context, sessionID string) (*entity.Cart, error) {
	cart := &model.Cart{SessionId: sessionID, Status: entity.CartStatusOpen}
	// A partial unique index on (session_id) WHERE status = 'open' makes
	// concurrent creates collapse into one row.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cart).Error
	if err != nil {
		return nil, err
	}
	return r.FindOpen(ctx, sessionID)
}

func (r *CartRepositoryImpl) AddItem(ctx context.Context, sessionID string, itemID int64, quantity int, branchID int) error {
	cart, err := r.GetOrCreateOpen(ctx, sessionID)
	if err != nil {
		return err
	}

	var price model.ProductPrice
	err = r.db.WithContext(ctx).
		Where("item_id = ? AND branch_id = ?", itemID, branchID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrPriceNotFound
		}
		return err
	}
	unitPrice := price.ListPrice
	if price.OfferPrice != nil && *price.OfferPrice > 0 {
		unitPrice = *price.OfferPrice
	}

	item := &model.CartItem{
		CartId:    cart.Id,
		ItemId:    itemID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"unit_price": unitPrice,
			}),
		}).
		Create(item).Error
}

func (r *CartRepositoryImpl) FindOpen(ctx context.Context, sessionID string) (*entity.Cart, error) {
	var m model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ? AND status = ?", sessionID, entity.CartStatusOpen).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CartToEntity(&m, r.itemDescriptions(ctx, &m)), nil
}

func (r *CartRepositoryImpl) Close(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("session_id = ? AND status = ?", sessionID, entity.CartStatusOpen).
		Update("status", entity.CartStatusClosed).Error
}

// itemDescriptions resolves item ids to their product descriptions for
// presentation. A lookup failure degrades to empty descriptions rather
// than failing the cart read.
func (r *CartRepositoryImpl) itemDescriptions(ctx context.Context, cart *model.Cart) map[int64]string {
	descriptions := make(map[int64]string, len(cart.Items))
	if len(cart.Items) == 0 {
		return descriptions
	}
	ids := make([]int64, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ItemId)
	}
	var rows []struct {
		Id          int64
		Description string
	}
	err := r.db.WithContext(ctx).
		Table("product_items").
		Select("product_items.id, products.description").
		Joins("JOIN products ON products.id = product_items.product_id").
		Where("product_items.id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return descriptions
	}
	for _, row := range rows {
		descriptions[row.Id] = row.Description
	}
	return descriptions
}
