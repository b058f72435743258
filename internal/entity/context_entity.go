package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ConversationContext is one persisted context record of a session.
// Payload is a type-specific JSON document (see SearchResultsPayload,
// PendingSelection, ItemAddedPayload).
type ConversationContext struct {
	Id                uuid.UUID
	SessionId         string
	ContextType       string
	Payload           json.RawMessage
	QueryHash         string
	OriginalMessage   string
	PresentedResponse string
	Active            bool
	CreatedAt         time.Time
}

// DecodePayload unmarshals the payload into the given target.
func (c *ConversationContext) DecodePayload(out any) error {
	return json.Unmarshal(c.Payload, out)
}

// ContextItem is the snapshot of a product item as it was presented to
// the user, kept inside a search_results payload.
type ContextItem struct {
	ItemId     int64    `json:"item_id"`
	Unit       string   `json:"unit"`
	PackageQty int      `json:"package_qty"`
	ListPrice  float64  `json:"list_price"`
	OfferPrice *float64 `json:"offer_price,omitempty"`
}

// Price is the offer price when present, list price otherwise.
func (i ContextItem) Price() float64 {
	if i.OfferPrice != nil && *i.OfferPrice > 0 {
		return *i.OfferPrice
	}
	return i.ListPrice
}

// ContextProduct groups the presented items of one product.
type ContextProduct struct {
	ProductId   int64         `json:"product_id"`
	Description string        `json:"description"`
	Items       []ContextItem `json:"items"`
}

// SearchResultsPayload is the payload of a search_results context.
type SearchResultsPayload struct {
	Status   string           `json:"status"`
	Query    string           `json:"query"`
	Products []ContextProduct `json:"products"`
}

// FindItem looks up an item id across all presented products.
func (p *SearchResultsPayload) FindItem(itemId int64) (ContextProduct, ContextItem, bool) {
	for _, prod := range p.Products {
		for _, it := range prod.Items {
			if it.ItemId == itemId {
				return prod, it, true
			}
		}
	}
	return ContextProduct{}, ContextItem{}, false
}

// PendingSelection is the payload of an awaiting_quantity context.
type PendingSelection struct {
	ItemId   int64          `json:"item_id"`
	Product  ContextProduct `json:"product"`
	Item     ContextItem    `json:"item"`
	Awaiting string         `json:"awaiting"`
}

// ItemAddedPayload is the payload of an item_added context.
type ItemAddedPayload struct {
	ItemId    int64   `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}
