package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/pkg/assistant/query"
)

// Executor runs the three-tier fallback search: strict full-text with
// every extracted filter, unit-relaxed fallback, then trigram
// similarity as a last resort for completely unfiltered queries.
type Executor struct {
	extractor        *query.Extractor
	products         contract.ProductRepository
	logger           logger.ILogger
	trigramThreshold float64
	refetchWorkers   int
}

func NewExecutor(extractor *query.Extractor, products contract.ProductRepository, log logger.ILogger) *Executor {
	return &Executor{
		extractor:        extractor,
		products:         products,
		logger:           log,
		trigramThreshold: constant.TrigramThresholdDefault,
		refetchWorkers:   4,
	}
}

// WithTrigramThreshold overrides the default similarity cutoff for the
// trigram tier. Values outside (0, 1] are ignored.
func (e *Executor) WithTrigramThreshold(threshold float64) *Executor {
	if threshold > 0 && threshold <= 1 {
		e.trigramThreshold = threshold
	}
	return e
}

// Search resolves the query through the tier ladder and re-fetches item
// variants for every surviving product. Infrastructure errors at any
// tier propagate; only a tier that legitimately found nothing lets the
// ladder advance.
func (e *Executor) Search(ctx context.Context, q Query) (*Outcome, error) {
	residual, filters, err := e.extractor.Extract(ctx, q.RawText)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = constant.SearchLimitDefault
	}
	params := contract.SearchParams{
		Tokens:        query.Tokens(residual),
		VolumePattern: filters.VolumePattern,
		Units:         filters.Units,
		OffersOnly:    q.OffersOnly,
		BranchID:      q.BranchID,
		Sort:          q.Sort,
		Limit:         limit,
	}

	strict := e.runFullText(ctx, params)
	if strict.Failed() {
		return nil, strict.Err
	}
	if !strict.Empty() {
		return e.finish(ctx, q, strict.Rows, e.hitStatus(constant.SearchStatusSuccess, q.OffersOnly), filters.Units)
	}

	// Unit-relaxed fallback only makes sense when a unit constraint was
	// the thing that could have excluded everything.
	if len(filters.Units) > 0 {
		relaxed := params
		relaxed.Units = nil
		fallback := e.runFullText(ctx, relaxed)
		if fallback.Failed() {
			return nil, fallback.Err
		}
		if !fallback.Empty() {
			e.logger.Debug("search", "strict tier empty, unit-relaxed fallback hit", map[string]interface{}{
				"query": q.RawText,
				"units": filters.Units,
			})
			return e.finish(ctx, q, fallback.Rows, e.hitStatus(constant.SearchStatusFallback, q.OffersOnly), nil)
		}
	}

	// Trigram runs only for completely unfiltered queries: a query that
	// carried filters which did not help stays a miss.
	if filters.Empty() {
		trigram := e.runTrigram(ctx, q.RawText, limit)
		if trigram.Failed() {
			return nil, trigram.Err
		}
		if !trigram.Empty() {
			e.logger.Debug("search", "trigram tier hit", map[string]interface{}{
				"query": q.RawText,
			})
			return e.finish(ctx, q, trigram.Rows, constant.SearchStatusTrigram, nil)
		}
	}

	status := constant.SearchStatusNoResults
	if q.OffersOnly {
		status = constant.SearchStatusNoOffers
	}
	return &Outcome{Status: status, Products: nil}, nil
}

func (e *Executor) runFullText(ctx context.Context, params contract.SearchParams) Result {
	rows, err := e.products.SearchFullText(ctx, params)
	return Result{Rows: rows, Err: err}
}

func (e *Executor) runTrigram(ctx context.Context, raw string, limit int) Result {
	rows, err := e.products.SearchTrigram(ctx, raw, e.trigramThreshold, limit)
	return Result{Rows: rows, Err: err}
}

func (e *Executor) hitStatus(base string, offersOnly bool) string {
	if offersOnly {
		return constant.SearchStatusOffersFound
	}
	return base
}

// finish runs the item re-fetch pass. The strict tier re-applies the
// unit constraint at the item level; fallback and trigram pass nil so
// the user can pick any packaging. Products left without items drop out.
func (e *Executor) finish(ctx context.Context, q Query, products []*entity.Product, status string, units []string) (*Outcome, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.refetchWorkers)

	for _, p := range products {
		p := p
		g.Go(func() error {
			items, err := e.products.FindItems(gctx, p.Id, q.BranchID, units)
			if err != nil {
				return err
			}
			if q.OffersOnly {
				items = onOfferOnly(items)
			}
			p.Items = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if len(p.Items) > 0 {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		status = constant.SearchStatusNoResults
		if q.OffersOnly {
			status = constant.SearchStatusNoOffers
		}
	}
	return &Outcome{Status: status, Products: kept}, nil
}

func onOfferOnly(items []*entity.ProductItem) []*entity.ProductItem {
	kept := make([]*entity.ProductItem, 0, len(items))
	for _, it := range items {
		if it.OnOffer() {
			kept = append(kept, it)
		}
	}
	return kept
}
