package resolver

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/pkg/assistant/response"
	"shop-assistant-be/pkg/assistant/search"
)

// ContextStore is the session context persistence consumed by the
// resolver. An error from any method is an infrastructure failure and
// must propagate; it is never read as "no context".
type ContextStore interface {
	Put(ctx context.Context, sessionID, contextType string, payload any, originalMessage, presentedResponse string) error
	Latest(ctx context.Context, sessionID string, contextTypes ...string) (*entity.ConversationContext, error)
	Recent(ctx context.Context, sessionID, contextType string, limit int) ([]*entity.ConversationContext, error)
	Clear(ctx context.Context, sessionID, contextType string) error
}

// Searcher runs the tiered product search.
type Searcher interface {
	Search(ctx context.Context, q search.Query) (*search.Outcome, error)
}

// CartGateway mutates and reads the session cart. AddItem is additive.
type CartGateway interface {
	AddItem(ctx context.Context, sessionID string, itemID int64, quantity int) error
	Summary(ctx context.Context, sessionID string) (*entity.Cart, error)
}

// Classifier decides what a free-text message is asking for.
type Classifier interface {
	Classify(ctx context.Context, message string) Decision
}

// Decision is the classifier's validated output.
type Decision struct {
	ToolName   string
	Query      string
	OffersOnly bool
	Sort       string
	Reply      string
	Source     string
}

// TurnResult is what one handled message produced.
type TurnResult struct {
	Reply            string
	Action           string
	ClassifierSource string
}

// Turn actions for logging and telemetry.
const (
	ActionSearch       = "search"
	ActionSelection    = "selection"
	ActionQuantity     = "quantity"
	ActionCancelled    = "cancelled"
	ActionNotFound     = "not_found"
	ActionReprompt     = "reprompt"
	ActionCart         = "cart"
	ActionSmallTalk    = "small_talk"
	ActionPriceMissing = "price_missing"
)

var (
	bareNumberPattern = regexp.MustCompile(`^\s*(\d{1,6})\s*$`)
	// Explicit selection phrasing. Unlike a bare number, an explicit
	// reference that cannot be resolved is reported as not found
	// instead of falling through to a new search.
	explicitSelectionPattern = regexp.MustCompile(`(?i)^\s*(?:id|item|quero o|quero a|selecionar|escolher)\s+(\d{1,6})\s*$`)
	firstNumberPattern       = regexp.MustCompile(`\d+`)
)

// Resolver is the conversational state machine. The current state is
// inferred from the newest active context row, so every read-decide-
// write sequence for a session must run under the session lock.
type Resolver struct {
	store      ContextStore
	searcher   Searcher
	cart       CartGateway
	classifier Classifier
	presenter  *response.Presenter
	logger     logger.ILogger
	branchID   int
}

func NewResolver(store ContextStore, searcher Searcher, cart CartGateway, classifier Classifier, log logger.ILogger, branchID int) *Resolver {
	return &Resolver{
		store:      store,
		searcher:   searcher,
		cart:       cart,
		classifier: classifier,
		presenter:  response.NewPresenter(),
		logger:     log,
		branchID:   branchID,
	}
}

// HandleTurn interprets one inbound message against the session's
// latest context and advances the state machine.
func (r *Resolver) HandleTurn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	pending, err := r.store.Latest(ctx, sessionID, constant.ContextTypeAwaitingQuantity)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return r.handleAwaitingQuantity(ctx, sessionID, message, pending)
	}

	if match := explicitSelectionPattern.FindStringSubmatch(message); match != nil {
		return r.handleSelection(ctx, sessionID, message, match[1], true)
	}
	if match := bareNumberPattern.FindStringSubmatch(message); match != nil {
		return r.handleSelection(ctx, sessionID, message, match[1], false)
	}

	return r.handleFreeText(ctx, sessionID, message)
}

// handleSelection resolves a numeric reference against the active
// search_results context. A bare number that resolves to nothing is
// ordinary free text and becomes a new search; an explicit reference
// that resolves to nothing is a user-visible not-found outcome.
func (r *Resolver) handleSelection(ctx context.Context, sessionID, message, reference string, explicit bool) (*TurnResult, error) {
	latest, err := r.store.Latest(ctx, sessionID, constant.ContextTypeSearchResults)
	if err != nil {
		return nil, err
	}

	if latest != nil {
		var payload entity.SearchResultsPayload
		if err := latest.DecodePayload(&payload); err != nil {
			return nil, err
		}
		itemID, _ := strconv.ParseInt(reference, 10, 64)
		if prod, item, ok := payload.FindItem(itemID); ok {
			selection := entity.PendingSelection{
				ItemId:   itemID,
				Product:  prod,
				Item:     item,
				Awaiting: "quantity",
			}
			reply := r.presenter.AskQuantity(prod, item)
			if err := r.store.Put(ctx, sessionID, constant.ContextTypeAwaitingQuantity, selection, message, reply); err != nil {
				return nil, err
			}
			return &TurnResult{Reply: reply, Action: ActionSelection}, nil
		}
	}

	if explicit {
		// Context missing or id absent: report it, touch nothing.
		return &TurnResult{Reply: r.presenter.ReferenceNotFound(reference), Action: ActionNotFound}, nil
	}
	return r.handleFreeText(ctx, sessionID, message)
}

func (r *Resolver) handleAwaitingQuantity(ctx context.Context, sessionID, message string, pending *entity.ConversationContext) (*TurnResult, error) {
	var selection entity.PendingSelection
	if err := pending.DecodePayload(&selection); err != nil {
		return nil, err
	}

	if isCancellation(message) {
		if err := r.store.Clear(ctx, sessionID, constant.ContextTypeAwaitingQuantity); err != nil {
			return nil, err
		}
		reply := r.presenter.Cancelled()
		if err := r.store.Put(ctx, sessionID, constant.ContextTypeCancelled, selection, message, reply); err != nil {
			return nil, err
		}
		return &TurnResult{Reply: reply, Action: ActionCancelled}, nil
	}

	quantity, ok := parseQuantity(message)
	if !ok {
		// Rewrite, never append: exactly one pending selection exists.
		reply := r.presenter.InvalidQuantity()
		if err := r.store.Put(ctx, sessionID, constant.ContextTypeAwaitingQuantity, selection, pending.OriginalMessage, reply); err != nil {
			return nil, err
		}
		return &TurnResult{Reply: reply, Action: ActionReprompt}, nil
	}

	if err := r.cart.AddItem(ctx, sessionID, selection.ItemId, quantity); err != nil {
		if errors.Is(err, contract.ErrPriceNotFound) {
			// Pending selection stays as-is; the user can pick another
			// item or cancel.
			return &TurnResult{Reply: r.presenter.PriceUnavailable(), Action: ActionPriceMissing}, nil
		}
		return nil, err
	}

	if err := r.store.Clear(ctx, sessionID, constant.ContextTypeAwaitingQuantity); err != nil {
		return nil, err
	}
	added := entity.ItemAddedPayload{
		ItemId:    selection.ItemId,
		Quantity:  quantity,
		UnitPrice: selection.Item.Price(),
		Total:     float64(quantity) * selection.Item.Price(),
	}
	reply := r.presenter.ItemAdded(selection.Product, selection.Item, quantity)
	if err := r.store.Put(ctx, sessionID, constant.ContextTypeItemAdded, added, message, reply); err != nil {
		return nil, err
	}
	return &TurnResult{Reply: reply, Action: ActionQuantity}, nil
}

func (r *Resolver) handleFreeText(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	decision := r.classifier.Classify(ctx, message)
	if decision.Source == constant.ClassifierSourceHeuristic {
		r.logger.Info("resolver", "turn classified by heuristic path", map[string]interface{}{
			"session_id": sessionID,
			"tool":       decision.ToolName,
		})
	}

	switch decision.ToolName {
	case constant.ToolViewCart:
		cart, err := r.cart.Summary(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &TurnResult{Reply: r.presenter.Cart(cart), Action: ActionCart, ClassifierSource: decision.Source}, nil

	case constant.ToolSmallTalk:
		reply := decision.Reply
		if reply == "" {
			reply = "Olá! Posso buscar produtos ou mostrar seu carrinho."
		}
		return &TurnResult{Reply: reply, Action: ActionSmallTalk, ClassifierSource: decision.Source}, nil
	}

	query := decision.Query
	if strings.TrimSpace(query) == "" {
		query = message
	}
	outcome, err := r.searcher.Search(ctx, search.Query{
		RawText:    query,
		BranchID:   r.branchID,
		Sort:       decision.Sort,
		OffersOnly: decision.OffersOnly,
	})
	if err != nil {
		return nil, err
	}

	if len(outcome.Products) == 0 {
		return &TurnResult{Reply: r.presenter.NoResults(outcome.Status), Action: ActionSearch, ClassifierSource: decision.Source}, nil
	}

	payload := buildSearchPayload(outcome, query)
	reply := r.presenter.SearchResults(payload)
	if err := r.store.Put(ctx, sessionID, constant.ContextTypeSearchResults, payload, message, reply); err != nil {
		return nil, err
	}
	return &TurnResult{Reply: reply, Action: ActionSearch, ClassifierSource: decision.Source}, nil
}

func buildSearchPayload(outcome *search.Outcome, query string) *entity.SearchResultsPayload {
	payload := &entity.SearchResultsPayload{
		Status: outcome.Status,
		Query:  query,
	}
	for _, prod := range outcome.Products {
		cp := entity.ContextProduct{
			ProductId:   prod.Id,
			Description: prod.DisplayName(),
		}
		for _, item := range prod.Items {
			cp.Items = append(cp.Items, entity.ContextItem{
				ItemId:     item.Id,
				Unit:       item.Unit,
				PackageQty: item.PackageQty,
				ListPrice:  item.ListPrice,
				OfferPrice: item.OfferPrice,
			})
		}
		payload.Products = append(payload.Products, cp)
	}
	return payload
}

func isCancellation(message string) bool {
	text := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range constant.CancelPhrases {
		if text == phrase || strings.HasPrefix(text, phrase+" ") {
			return true
		}
	}
	return false
}

// parseQuantity pulls the first integer out of the message; it must be
// positive to count as an answer.
func parseQuantity(message string) (int, bool) {
	match := firstNumberPattern.FindString(message)
	if match == "" {
		return 0, false
	}
	quantity, err := strconv.Atoi(match)
	if err != nil || quantity <= 0 {
		return 0, false
	}
	return quantity, true
}
