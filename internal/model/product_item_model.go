package model

type ProductItem struct {
	Id         int64  `gorm:"primaryKey;autoIncrement:false"`
	ProductId  int64  `gorm:"not null;index"`
	Unit       string `gorm:"type:text;not null;index"`
	PackageQty int    `gorm:"not null;default:1"`
	Prices     []ProductPrice `gorm:"foreignKey:ItemId"`
}

func (ProductItem) TableName() string {
	return "product_items"
}
