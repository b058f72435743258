package implementation

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UnitAliasRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewUnitAliasRepository(db *gorm.DB) contract.UnitAliasRepository {
	return &UnitAliasRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *UnitAliasRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UnitAliasRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnitAlias, error) {
	var models []*model.UnitAlias
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UnitAlias, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.UnitAliasToEntity(m))
	}
	return entities, nil
}
