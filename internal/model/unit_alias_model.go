package model

type UnitAlias struct {
	Id     int64  `gorm:"primaryKey"`
	Alias  string `gorm:"type:text;not null;uniqueIndex"`
	Unit   string `gorm:"type:text;not null"`
	Active bool   `gorm:"not null;default:true"`
}

func (UnitAlias) TableName() string {
	return "unit_aliases"
}
