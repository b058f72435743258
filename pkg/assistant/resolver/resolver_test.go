package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/pkg/assistant/queryhash"
	"shop-assistant-be/pkg/assistant/search"
)

// memoryStore is an in-memory ContextStore honoring dedup and the
// newest-first read order.
type memoryStore struct {
	rows      []*entity.ConversationContext
	latestErr error
}

func (s *memoryStore) Put(ctx context.Context, sessionID, contextType string, payload any, originalMessage, presentedResponse string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	hash := queryhash.Hash(originalMessage)
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.SessionId == sessionID && row.ContextType == contextType && row.QueryHash == hash {
			continue
		}
		kept = append(kept, row)
	}
	s.rows = append(kept, &entity.ConversationContext{
		SessionId:       sessionID,
		ContextType:     contextType,
		Payload:         raw,
		QueryHash:       hash,
		OriginalMessage: originalMessage,
		Active:          true,
	})
	return nil
}

func (s *memoryStore) Latest(ctx context.Context, sessionID string, contextTypes ...string) (*entity.ConversationContext, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	for i := len(s.rows) - 1; i >= 0; i-- {
		row := s.rows[i]
		if row.SessionId != sessionID || !row.Active {
			continue
		}
		if len(contextTypes) == 0 {
			return row, nil
		}
		for _, ct := range contextTypes {
			if row.ContextType == ct {
				return row, nil
			}
		}
	}
	return nil, nil
}

func (s *memoryStore) Recent(ctx context.Context, sessionID, contextType string, limit int) ([]*entity.ConversationContext, error) {
	var out []*entity.ConversationContext
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		row := s.rows[i]
		if row.SessionId == sessionID && row.ContextType == contextType && row.Active {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *memoryStore) Clear(ctx context.Context, sessionID, contextType string) error {
	for _, row := range s.rows {
		if row.SessionId == sessionID && row.ContextType == contextType {
			row.Active = false
		}
	}
	return nil
}

func (s *memoryStore) countActive(contextType string) int {
	n := 0
	for _, row := range s.rows {
		if row.ContextType == contextType && row.Active {
			n++
		}
	}
	return n
}

type fakeSearcher struct {
	outcome *search.Outcome
	calls   []search.Query
}

func (f *fakeSearcher) Search(ctx context.Context, q search.Query) (*search.Outcome, error) {
	f.calls = append(f.calls, q)
	return f.outcome, nil
}

type fakeCart struct {
	addCalls []struct {
		ItemID   int64
		Quantity int
	}
	addErr error
}

func (f *fakeCart) AddItem(ctx context.Context, sessionID string, itemID int64, quantity int) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addCalls = append(f.addCalls, struct {
		ItemID   int64
		Quantity int
	}{itemID, quantity})
	return nil
}

func (f *fakeCart) Summary(ctx context.Context, sessionID string) (*entity.Cart, error) {
	return &entity.Cart{SessionId: sessionID}, nil
}

type searchOnlyClassifier struct{}

func (searchOnlyClassifier) Classify(ctx context.Context, message string) Decision {
	return Decision{ToolName: "search_products", Query: message, Sort: "relevance", Source: "heuristic"}
}

func cafeOutcome() *search.Outcome {
	return &search.Outcome{
		Status: "success",
		Products: []*entity.Product{
			{
				Id:          100,
				Description: "Café Torrado 500ml",
				Items: []*entity.ProductItem{
					{Id: 18135, ProductId: 100, Unit: "UN", PackageQty: 1, ListPrice: 24.9},
					{Id: 18136, ProductId: 100, Unit: "CX", PackageQty: 12, ListPrice: 270.0},
				},
			},
		},
	}
}

func newTestResolver(store *memoryStore, searcher *fakeSearcher, cart *fakeCart) *Resolver {
	return NewResolver(store, searcher, cart, searchOnlyClassifier{}, logger.NewNoopLogger(), 1)
}

func TestHandleTurnFullPurchaseFlow(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	// Turn 1: free-text search stores a search_results context.
	res, err := r.HandleTurn(ctx, "s1", "buscar café 500ml")
	if err != nil {
		t.Fatalf("turn 1 error = %v", err)
	}
	if res.Action != ActionSearch {
		t.Fatalf("turn 1 action = %q, want search", res.Action)
	}
	if store.countActive("search_results") != 1 {
		t.Fatalf("expected one stored search_results context")
	}

	// Turn 2: a listed item id becomes a pending selection.
	res, err = r.HandleTurn(ctx, "s1", "18135")
	if err != nil {
		t.Fatalf("turn 2 error = %v", err)
	}
	if res.Action != ActionSelection {
		t.Fatalf("turn 2 action = %q, want selection", res.Action)
	}
	pending, _ := store.Latest(ctx, "s1", "awaiting_quantity")
	if pending == nil {
		t.Fatal("expected an awaiting_quantity context")
	}
	var selection entity.PendingSelection
	if err := pending.DecodePayload(&selection); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if selection.ItemId != 18135 || selection.Awaiting != "quantity" {
		t.Fatalf("pending selection = %+v", selection)
	}

	// Turn 3: quantity answer mutates the cart and closes the flow.
	res, err = r.HandleTurn(ctx, "s1", "3")
	if err != nil {
		t.Fatalf("turn 3 error = %v", err)
	}
	if res.Action != ActionQuantity {
		t.Fatalf("turn 3 action = %q, want quantity", res.Action)
	}
	if len(cart.addCalls) != 1 || cart.addCalls[0].ItemID != 18135 || cart.addCalls[0].Quantity != 3 {
		t.Fatalf("cart calls = %+v", cart.addCalls)
	}
	if store.countActive("awaiting_quantity") != 0 {
		t.Error("pending selection not cleared after add")
	}
	if store.countActive("item_added") != 1 {
		t.Error("expected an item_added context")
	}
}

func TestHandleTurnStrayNumberStartsSearch(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: &search.Outcome{Status: "no_results"}}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)

	res, err := r.HandleTurn(context.Background(), "s1", "18135")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionSearch {
		t.Errorf("action = %q, want search", res.Action)
	}
	if len(searcher.calls) != 1 || searcher.calls[0].RawText != "18135" {
		t.Errorf("search calls = %+v", searcher.calls)
	}
	if len(cart.addCalls) != 0 {
		t.Errorf("stray number must never touch the cart")
	}
}

func TestHandleTurnUnlistedNumberFallsToSearch(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	if _, err := r.HandleTurn(ctx, "s1", "buscar café"); err != nil {
		t.Fatal(err)
	}
	res, err := r.HandleTurn(ctx, "s1", "99999")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionSearch {
		t.Errorf("action = %q, want search (bare unlisted number is free text)", res.Action)
	}
	if store.countActive("awaiting_quantity") != 0 {
		t.Error("no selection should have been created")
	}
}

func TestHandleTurnExplicitReferenceNotFound(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	if _, err := r.HandleTurn(ctx, "s1", "buscar café"); err != nil {
		t.Fatal(err)
	}
	searchCalls := len(searcher.calls)

	res, err := r.HandleTurn(ctx, "s1", "item 99999")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionNotFound {
		t.Errorf("action = %q, want not_found", res.Action)
	}
	if len(searcher.calls) != searchCalls {
		t.Error("an unresolvable explicit reference must not trigger a new search")
	}
	if store.countActive("awaiting_quantity") != 0 {
		t.Error("context must not advance on a failed reference")
	}
}

func TestHandleTurnCancellation(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	if _, err := r.HandleTurn(ctx, "s1", "buscar café"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.HandleTurn(ctx, "s1", "18135"); err != nil {
		t.Fatal(err)
	}

	res, err := r.HandleTurn(ctx, "s1", "cancelar")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionCancelled {
		t.Errorf("action = %q, want cancelled", res.Action)
	}
	if len(cart.addCalls) != 0 {
		t.Error("cancellation must not call the cart")
	}
	if store.countActive("awaiting_quantity") != 0 {
		t.Error("pending selection survived cancellation")
	}
}

func TestHandleTurnUnparseableQuantityReprompts(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	if _, err := r.HandleTurn(ctx, "s1", "buscar café"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.HandleTurn(ctx, "s1", "18135"); err != nil {
		t.Fatal(err)
	}

	res, err := r.HandleTurn(ctx, "s1", "muitos por favor")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionReprompt {
		t.Errorf("action = %q, want reprompt", res.Action)
	}
	if store.countActive("awaiting_quantity") != 1 {
		t.Errorf("exactly one pending selection must remain, got %d", store.countActive("awaiting_quantity"))
	}
	if len(cart.addCalls) != 0 {
		t.Error("reprompt must not call the cart")
	}
}

func TestHandleTurnPriceMissingKeepsPending(t *testing.T) {
	store := &memoryStore{}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	cart := &fakeCart{addErr: contract.ErrPriceNotFound}
	r := newTestResolver(store, searcher, cart)
	ctx := context.Background()

	if _, err := r.HandleTurn(ctx, "s1", "buscar café"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.HandleTurn(ctx, "s1", "18135"); err != nil {
		t.Fatal(err)
	}

	res, err := r.HandleTurn(ctx, "s1", "2")
	if err != nil {
		t.Fatalf("HandleTurn error = %v", err)
	}
	if res.Action != ActionPriceMissing {
		t.Errorf("action = %q, want price_missing", res.Action)
	}
	if store.countActive("awaiting_quantity") != 1 {
		t.Error("pending selection must survive a price failure")
	}
	if store.countActive("item_added") != 0 {
		t.Error("no item_added context on failure")
	}
}

func TestHandleTurnStoreFailurePropagates(t *testing.T) {
	wantErr := errors.New("context store down")
	store := &memoryStore{latestErr: wantErr}
	searcher := &fakeSearcher{outcome: cafeOutcome()}
	r := newTestResolver(store, searcher, &fakeCart{})

	_, err := r.HandleTurn(context.Background(), "s1", "18135")
	if !errors.Is(err, wantErr) {
		t.Errorf("store failure must propagate, got %v", err)
	}
	if len(searcher.calls) != 0 {
		t.Error("a store failure must never be read as missing context")
	}
}
