package dto

type SearchRequest struct {
	Query      string `json:"query" validate:"required"`
	SessionId  string `json:"session_id"`
	BranchId   int    `json:"branch_id"`
	Sort       string `json:"sort" validate:"omitempty,oneof=relevance price_asc price_desc"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=50"`
	OffersOnly bool   `json:"offers_only"`
}

type SearchItemResponse struct {
	ItemId     int64    `json:"item_id"`
	Unit       string   `json:"unit"`
	PackageQty int      `json:"package_qty"`
	ListPrice  float64  `json:"list_price"`
	OfferPrice *float64 `json:"offer_price,omitempty"`
}

type SearchProductResponse struct {
	ProductId   int64                `json:"product_id"`
	Description string               `json:"description"`
	Brand       string               `json:"brand,omitempty"`
	Items       []SearchItemResponse `json:"items"`
}

type SearchResponse struct {
	Status   string                  `json:"status"`
	Products []SearchProductResponse `json:"products"`
}
