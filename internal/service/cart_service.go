package service

import (
	"context"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/events"
	pktNats "shop-assistant-be/pkg/nats"
)

type ICartService interface {
	AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	GetCart(ctx context.Context, sessionID string) (*dto.CartResponse, error)
	// AddForSession is the resolver-facing additive upsert.
	AddForSession(ctx context.Context, sessionID string, itemID int64, quantity int) error
	Summary(ctx context.Context, sessionID string) (*entity.Cart, error)
}

type cartService struct {
	uowFactory      unitofwork.RepositoryFactory
	eventPublisher  *pktNats.Publisher
	logger          logger.ILogger
	defaultBranchID int
}

func NewCartService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger, defaultBranchID int) ICartService {
	return &cartService{
		uowFactory:      uowFactory,
		eventPublisher:  eventPublisher,
		logger:          log,
		defaultBranchID: defaultBranchID,
	}
}

func (s *cartService) AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	branchID := req.BranchId
	if branchID == 0 {
		branchID = s.defaultBranchID
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CartRepository().AddItem(ctx, req.SessionId, req.ItemId, req.Quantity, branchID); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, req.SessionId, req.ItemId, req.Quantity)
	return s.GetCart(ctx, req.SessionId)
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	cart, err := s.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cartToResponse(sessionID, cart), nil
}

func (s *cartService) AddForSession(ctx context.Context, sessionID string, itemID int64, quantity int) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CartRepository().AddItem(ctx, sessionID, itemID, quantity, s.defaultBranchID); err != nil {
		return err
	}
	s.publishCartUpdated(ctx, sessionID, itemID, quantity)
	return nil
}

func (s *cartService) Summary(ctx context.Context, sessionID string) (*entity.Cart, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CartRepository().FindOpen(ctx, sessionID)
}

// publishCartUpdated is best effort. The bus being down must never fail
// a cart write.
func (s *cartService) publishCartUpdated(ctx context.Context, sessionID string, itemID int64, quantity int) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewCartUpdated(sessionID, itemID, quantity)); err != nil {
		s.logger.Warn("cart", "failed to publish cart.updated", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func cartToResponse(sessionID string, cart *entity.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		SessionId: sessionID,
		Status:    entity.CartStatusOpen,
		Items:     make([]dto.CartItemResponse, 0),
	}
	if cart == nil {
		return resp
	}
	resp.Status = cart.Status
	resp.Total = cart.Total
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ItemId:      item.ItemId,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}

// cartGatewayAdapter exposes the cart service under the resolver's
// gateway contract.
type cartGatewayAdapter struct {
	svc ICartService
}

func NewCartGateway(svc ICartService) *cartGatewayAdapter {
	return &cartGatewayAdapter{svc: svc}
}

func (a *cartGatewayAdapter) AddItem(ctx context.Context, sessionID string, itemID int64, quantity int) error {
	return a.svc.AddForSession(ctx, sessionID, itemID, quantity)
}

func (a *cartGatewayAdapter) Summary(ctx context.Context, sessionID string) (*entity.Cart, error) {
	return a.svc.Summary(ctx, sessionID)
}
