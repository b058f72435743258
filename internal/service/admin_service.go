package service

import (
	"context"

	"github.com/google/uuid"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
)

type IAdminService interface {
	ListInteractions(ctx context.Context, sessionID string, limit, offset int) ([]*dto.InteractionLogResponse, error)
	AttachFeedback(ctx context.Context, req *dto.FeedbackRequest) error
	RecentContexts(ctx context.Context, sessionID, contextType string, limit int) ([]*dto.RecentContextResponse, error)
	ClearContexts(ctx context.Context, sessionID, contextType string) error
	RefreshAliases(ctx context.Context) (*dto.AliasRefreshResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory   unitofwork.RepositoryFactory
	contextStore IContextStoreService
	aliasCache   IAliasCacheService
	logger       logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	contextStore IContextStoreService,
	aliasCache IAliasCacheService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:   uowFactory,
		contextStore: contextStore,
		aliasCache:   aliasCache,
		logger:       log,
	}
}

func (s *adminService) ListInteractions(ctx context.Context, sessionID string, limit, offset int) ([]*dto.InteractionLogResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if sessionID != "" {
		specs = append(specs, specification.BySessionID{SessionID: sessionID})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.InteractionLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.InteractionLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.InteractionLogResponse{
			Id:           row.Id,
			SessionId:    row.SessionId,
			UserMessage:  row.UserMessage,
			ResponseJSON: row.ResponseJSON,
			FeedbackType: row.FeedbackType,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (s *adminService) AttachFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	id, err := uuid.Parse(req.InteractionId)
	if err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.InteractionLogRepository().AttachFeedback(ctx, id, req.FeedbackType, req.Expected)
}

func (s *adminService) RecentContexts(ctx context.Context, sessionID, contextType string, limit int) ([]*dto.RecentContextResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.contextStore.Recent(ctx, sessionID, contextType, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecentContextResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.RecentContextResponse{
			ContextType:     row.ContextType,
			OriginalMessage: row.OriginalMessage,
			Payload:         row.Payload,
			CreatedAt:       row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

func (s *adminService) ClearContexts(ctx context.Context, sessionID, contextType string) error {
	return s.contextStore.Clear(ctx, sessionID, contextType)
}

func (s *adminService) RefreshAliases(ctx context.Context) (*dto.AliasRefreshResponse, error) {
	count, err := s.aliasCache.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AliasRefreshResponse{Aliases: count}, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}
