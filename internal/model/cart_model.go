package model

import "time"

// One open cart per session is enforced by a partial unique index on
// (session_id) WHERE status = 'open', created in cmd/migrate.
type Cart struct {
	Id        int64  `gorm:"primaryKey"`
	SessionId string `gorm:"type:text;not null;index"`
	Status    string `gorm:"type:text;not null;default:open"`
	CreatedAt time.Time
	Items     []CartItem `gorm:"foreignKey:CartId"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	Id        int64   `gorm:"primaryKey"`
	CartId    int64   `gorm:"not null;uniqueIndex:uq_cart_item,priority:1"`
	ItemId    int64   `gorm:"not null;uniqueIndex:uq_cart_item,priority:2"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
