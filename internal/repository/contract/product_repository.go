package contract

import (
	"context"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/repository/specification"
)

// SearchParams carries the attributes extracted from a free-text query.
// Tokens feed the full-text tier; VolumePattern, Units and OffersOnly
// become item-level constraints; Units is dropped on the unit-relaxed
// fallback tier.
type SearchParams struct {
	Tokens        []string
	VolumePattern string
	Units         []string
	OffersOnly    bool
	BranchID      int
	Sort          string
	Limit         int
}

type ProductRepository interface {
	// SearchFullText runs the tsquery tier. Units may be empty on the
	// unit-relaxed fallback pass.
	SearchFullText(ctx context.Context, params SearchParams) ([]*entity.Product, error)
	// SearchTrigram matches the raw query by pg_trgm similarity.
	SearchTrigram(ctx context.Context, raw string, threshold float64, limit int) ([]*entity.Product, error)
	// FindItems fetches the priced item variants of one product for a
	// branch, optionally constrained to a unit set.
	FindItems(ctx context.Context, productID int64, branchID int, units []string) ([]*entity.ProductItem, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
