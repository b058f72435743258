package specification

import "gorm.io/gorm"

// ByProductID filters items by their parent product
type ByProductID struct {
	ProductID int64
}

func (s ByProductID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductID)
}

// ByUnits filters items to a canonical unit set
type ByUnits struct {
	Units []string
}

func (s ByUnits) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("unit IN ?", s.Units)
}

// ByActiveAlias keeps only active alias rows
type ByActiveAlias struct{}

func (s ByActiveAlias) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
