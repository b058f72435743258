package service

import (
	"context"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/pkg/assistant/search"
	"shop-assistant-be/pkg/events"
	pktNats "shop-assistant-be/pkg/nats"
)

type ICatalogService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

// catalogService exposes the tiered search directly over HTTP, outside
// any conversation.
type catalogService struct {
	executor        *search.Executor
	eventPublisher  *pktNats.Publisher
	logger          logger.ILogger
	defaultBranchID int
	defaultLimit    int
}

func NewCatalogService(executor *search.Executor, eventPublisher *pktNats.Publisher, log logger.ILogger, defaultBranchID, defaultLimit int) ICatalogService {
	return &catalogService{
		executor:        executor,
		eventPublisher:  eventPublisher,
		logger:          log,
		defaultBranchID: defaultBranchID,
		defaultLimit:    defaultLimit,
	}
}

func (s *catalogService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	branchID := req.BranchId
	if branchID == 0 {
		branchID = s.defaultBranchID
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}

	outcome, err := s.executor.Search(ctx, search.Query{
		RawText:    req.Query,
		BranchID:   branchID,
		Sort:       req.Sort,
		Limit:      limit,
		OffersOnly: req.OffersOnly,
	})
	if err != nil {
		return nil, err
	}

	s.publishSearchPerformed(ctx, req.SessionId, req.Query, outcome)

	resp := &dto.SearchResponse{
		Status:   outcome.Status,
		Products: make([]dto.SearchProductResponse, 0, len(outcome.Products)),
	}
	for _, prod := range outcome.Products {
		p := dto.SearchProductResponse{
			ProductId:   prod.Id,
			Description: prod.DisplayName(),
			Brand:       prod.Brand,
			Items:       make([]dto.SearchItemResponse, 0, len(prod.Items)),
		}
		for _, item := range prod.Items {
			p.Items = append(p.Items, dto.SearchItemResponse{
				ItemId:     item.Id,
				Unit:       item.Unit,
				PackageQty: item.PackageQty,
				ListPrice:  item.ListPrice,
				OfferPrice: item.OfferPrice,
			})
		}
		resp.Products = append(resp.Products, p)
	}
	return resp, nil
}

// publishSearchPerformed is best effort. A dead broker never fails the
// search itself.
func (s *catalogService) publishSearchPerformed(ctx context.Context, sessionID, query string, outcome *search.Outcome) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewSearchPerformed(sessionID, query, outcome.Status, len(outcome.Products))
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("catalog", "failed to publish search event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
