package mapper

import (
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type CartMapper struct{}

func NewCartMapper() *CartMapper {
	return &CartMapper{}
}

// CartToEntity computes line subtotals and the cart total. Item
// descriptions come from a separate catalog lookup keyed by item id.
func (m *CartMapper) CartToEntity(c *model.Cart, descriptions map[int64]string) *entity.Cart {
	if c == nil {
		return nil
	}
	cart := &entity.Cart{
		Id:        c.Id,
		SessionId: c.SessionId,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		Items:     make([]*entity.CartItem, 0, len(c.Items)),
	}
	for _, it := range c.Items {
		subtotal := float64(it.Quantity) * it.UnitPrice
		cart.Items = append(cart.Items, &entity.CartItem{
			ItemId:      it.ItemId,
			Description: descriptions[it.ItemId],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
		cart.Total += subtotal
	}
	return cart
}
