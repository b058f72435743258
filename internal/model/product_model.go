package model

type Product struct {
	Id             int64  `gorm:"primaryKey;autoIncrement:false"`
	Description    string `gorm:"type:text;not null"`
	WebDescription string `gorm:"type:text"`
	Brand          string `gorm:"type:text;index"`
	Category       string `gorm:"type:text"`
	Department     string `gorm:"type:text"`
	Items          []ProductItem `gorm:"foreignKey:ProductId"`
}

func (Product) TableName() string {
	return "products"
}
