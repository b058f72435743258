package entity

// Product is a catalog product with its purchasable item variants.
// Items carry branch-scoped prices and are populated by the item
// re-fetch pass of the search executor.
type Product struct {
	Id             int64
	Description    string
	WebDescription string
	Brand          string
	Category       string
	Department     string
	Rank           float64 // full-text rank or trigram similarity, tier-dependent
	Items          []*ProductItem
}

// DisplayName prefers the web description when the catalog has one.
func (p *Product) DisplayName() string {
	if p.WebDescription != "" {
		return p.WebDescription
	}
	return p.Description
}

// ProductItem is a purchasable variant of a product (unit + package size)
// with the price rows of a single branch flattened in.
type ProductItem struct {
	Id         int64
	ProductId  int64
	Unit       string
	PackageQty int
	ListPrice  float64
	OfferPrice *float64
}

// OnOffer reports whether a positive promotional price is present.
func (i *ProductItem) OnOffer() bool {
	return i.OfferPrice != nil && *i.OfferPrice > 0
}

// EffectivePrice is the offer price when present, list price otherwise.
func (i *ProductItem) EffectivePrice() float64 {
	if i.OnOffer() {
		return *i.OfferPrice
	}
	return i.ListPrice
}
