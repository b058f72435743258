package contract

import (
	"context"
	"errors"

	"shop-assistant-be/internal/entity"
)

// ErrPriceNotFound signals that an item has no registered price for the
// requested branch; cart writes must refuse instead of storing zero.
var ErrPriceNotFound = errors.New("no registered price for item at branch")

type CartRepository interface {
	// GetOrCreateOpen returns the session's open cart, creating it when
	// missing.
	GetOrCreateOpen(ctx context.Context, sessionID string) (*entity.Cart, error)
	// AddItem adds quantity of an item at its registered branch price.
	// Repeated adds of the same item accumulate.
	AddItem(ctx context.Context, sessionID string, itemID int64, quantity int, branchID int) error
	// FindOpen returns the open cart with items, or nil when the session
	// has none.
	FindOpen(ctx context.Context, sessionID string) (*entity.Cart, error)
	Close(ctx context.Context, sessionID string) error
}
