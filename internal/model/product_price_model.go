package model

type ProductPrice struct {
	Id         int64    `gorm:"primaryKey"`
	ItemId     int64    `gorm:"not null;uniqueIndex:uq_price_item_branch"`
	BranchId   int      `gorm:"not null;uniqueIndex:uq_price_item_branch"`
	ListPrice  float64  `gorm:"not null"`
	OfferPrice *float64
}

func (ProductPrice) TableName() string {
	return "product_prices"
}
