package mapper

import (
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:             p.Id,
		Description:    p.Description,
		WebDescription: p.WebDescription,
		Brand:          p.Brand,
		Category:       p.Category,
		Department:     p.Department,
	}
}

func (m *CatalogMapper) ProductsToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		entities = append(entities, m.ProductToEntity(p))
	}
	return entities
}

// ItemToEntity flattens the branch price row into the item. A nil price
// leaves both prices zeroed, which presentation treats as unavailable.
func (m *CatalogMapper) ItemToEntity(item *model.ProductItem, price *model.ProductPrice) *entity.ProductItem {
	if item == nil {
		return nil
	}
	e := &entity.ProductItem{
		Id:         item.Id,
		ProductId:  item.ProductId,
		Unit:       item.Unit,
		PackageQty: item.PackageQty,
	}
	if price != nil {
		e.ListPrice = price.ListPrice
		e.OfferPrice = price.OfferPrice
	}
	return e
}

func (m *CatalogMapper) UnitAliasToEntity(a *model.UnitAlias) *entity.UnitAlias {
	if a == nil {
		return nil
	}
	return &entity.UnitAlias{
		Alias:  a.Alias,
		Unit:   a.Unit,
		Active: a.Active,
	}
}
