package implementation

import (
	"context"
	"errors"
	"strings"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// searchRow carries the rank column alongside the product columns.
type searchRow struct {
	model.Product
	Rank float64
}

func (r *ProductRepositoryImpl) SearchFullText(ctx context.Context, params contract.SearchParams) ([]*entity.Product, error) {
	// A query with no tokens and no extracted filters has no WHERE
	// clause at all; filter-only queries ("caixa", "500ml") still run.
	if len(params.Tokens) == 0 && params.VolumePattern == "" && len(params.Units) == 0 {
		return nil, nil
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Table("products")
	if len(params.Tokens) > 0 {
		// Tokens are already sanitized by the extractor; join as AND terms.
		tsquery := strings.Join(params.Tokens, " & ")
		query = query.
			Select("products.*, ts_rank(product_search_document(products.description, products.web_description, products.brand, products.category, products.department), to_tsquery('portuguese', ?)) AS rank", tsquery).
			Where("product_search_document(products.description, products.web_description, products.brand, products.category, products.department) @@ to_tsquery('portuguese', ?)", tsquery)
	} else {
		query = query.Select("products.*, 0.0 AS rank")
	}

	query = r.applyItemConstraints(query, params)
	query = r.applySort(query, params)

	var rows []*searchRow
	if err := query.Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.rowsToEntities(rows), nil
}

func (r *ProductRepositoryImpl) SearchTrigram(ctx context.Context, raw string, threshold float64, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []*searchRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, similarity(products.description, ?) AS rank", raw).
		Where("similarity(products.description, ?) > ?", raw, threshold).
		Order("rank DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.rowsToEntities(rows), nil
}

// applyItemConstraints narrows products to those with at least one item
// matching the extracted attributes. EXISTS keeps the product grain.
func (r *ProductRepositoryImpl) applyItemConstraints(query *gorm.DB, params contract.SearchParams) *gorm.DB {
	if params.VolumePattern != "" {
		query = query.Where(
			"(products.description ILIKE ? OR products.web_description ILIKE ?)",
			params.VolumePattern, params.VolumePattern,
		)
	}
	if len(params.Units) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_items pi WHERE pi.product_id = products.id AND pi.unit IN ?)",
			params.Units,
		)
	}
	if params.OffersOnly {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_items pi JOIN product_prices pp ON pp.item_id = pi.id WHERE pi.product_id = products.id AND pp.branch_id = ? AND pp.offer_price IS NOT NULL AND pp.offer_price > 0)",
			params.BranchID,
		)
	}
	return query
}

// priceForSort is the branch-scoped cheapest effective price per
// product. Without the branch filter, another branch's promo would
// reorder this branch's results.
const priceForSort = "(SELECT MIN(COALESCE(pp.offer_price, pp.list_price)) FROM product_items pi JOIN product_prices pp ON pp.item_id = pi.id WHERE pi.product_id = products.id AND pp.branch_id = ?)"

func (r *ProductRepositoryImpl) applySort(query *gorm.DB, params contract.SearchParams) *gorm.DB {
	switch params.Sort {
	case "price_asc":
		return query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                priceForSort + " ASC NULLS LAST",
			Vars:               []interface{}{params.BranchID},
			WithoutParentheses: true,
		}})
	case "price_desc":
		return query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                priceForSort + " DESC NULLS LAST",
			Vars:               []interface{}{params.BranchID},
			WithoutParentheses: true,
		}})
	default:
		if len(params.Tokens) == 0 {
			return query.Order("products.id ASC")
		}
		return query.Order("rank DESC")
	}
}

func (r *ProductRepositoryImpl) rowsToEntities(rows []*searchRow) []*entity.Product {
	entities := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		e := r.mapper.ProductToEntity(&row.Product)
		e.Rank = row.Rank
		entities = append(entities, e)
	}
	return entities
}

func (r *ProductRepositoryImpl) FindItems(ctx context.Context, productID int64, branchID int, units []string) ([]*entity.ProductItem, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("Prices", "branch_id = ?", branchID)
	if len(units) > 0 {
		query = query.Where("unit IN ?", units)
	}

	var items []*model.ProductItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.ProductItem, 0, len(items))
	for _, item := range items {
		var price *model.ProductPrice
		if len(item.Prices) > 0 {
			price = &item.Prices[0]
		}
		entities = append(entities, r.mapper.ItemToEntity(item, price))
	}
	return entities, nil
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProductToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ProductsToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
