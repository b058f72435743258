package entity

import "time"

// Cart is the open cart of a session with computed totals.
type Cart struct {
	Id        int64
	SessionId string
	Status    string
	Items     []*CartItem
	Total     float64
	CreatedAt time.Time
}

// CartItem is one cart line. UnitPrice is the price registered at the
// moment the item was added (offer price preferred).
type CartItem struct {
	ItemId      int64
	Description string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

const (
	CartStatusOpen   = "open"
	CartStatusClosed = "closed"
)
