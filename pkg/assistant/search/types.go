package search

import (
	"shop-assistant-be/internal/entity"
)

// Query is the immutable input of one search run.
type Query struct {
	RawText    string
	BranchID   int
	Sort       string
	Limit      int
	OffersOnly bool
}

// Outcome is what a search run produced. Status is the sole signal the
// presentation layer needs: it encodes the producing tier and the
// offers restriction.
type Outcome struct {
	Status   string
	Products []*entity.Product
}

// Result is one tier's execution outcome. The tiering loop advances to
// the next tier only when a tier was evaluated and legitimately found
// nothing; a failed evaluation propagates instead of being read as
// "no rows".
type Result struct {
	Rows []*entity.Product
	Err  error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) Empty() bool {
	return r.Err == nil && len(r.Rows) == 0
}
