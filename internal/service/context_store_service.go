package service

import (
	"context"
	"encoding/json"
	"time"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/assistant/queryhash"

	"github.com/google/uuid"
)

type IContextStoreService interface {
	Put(ctx context.Context, sessionID, contextType string, payload any, originalMessage, presentedResponse string) error
	Latest(ctx context.Context, sessionID string, contextTypes ...string) (*entity.ConversationContext, error)
	Recent(ctx context.Context, sessionID, contextType string, limit int) ([]*entity.ConversationContext, error)
	Clear(ctx context.Context, sessionID, contextType string) error
}

// contextStoreService persists conversation contexts with normalized-
// hash dedup, per-(session,type) retention and a TTL applied on read.
// Every Put runs dedup, insert and trim in one transaction so a
// concurrent duplicate delivery cannot interleave between them.
type contextStoreService struct {
	uowFactory unitofwork.RepositoryFactory
	retention  int
	ttl        time.Duration
	logger     logger.ILogger
}

func NewContextStoreService(uowFactory unitofwork.RepositoryFactory, retention int, ttl time.Duration, log logger.ILogger) IContextStoreService {
	if retention <= 0 {
		retention = constant.ContextRetentionDefault
	}
	return &contextStoreService{
		uowFactory: uowFactory,
		retention:  retention,
		ttl:        ttl,
		logger:     log,
	}
}

func (s *contextStoreService) Put(ctx context.Context, sessionID, contextType string, payload any, originalMessage, presentedResponse string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	hash := queryhash.Hash(originalMessage)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.ConversationContextRepository()

	// Dedup: an equivalent message replaces its older row entirely.
	err = repo.DeleteWhere(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByContextType{ContextType: contextType},
		specification.ByQueryHash{QueryHash: hash},
	)
	if err != nil {
		return err
	}

	// A new pending selection supersedes any older one; only a single
	// active awaiting_quantity row may exist per session.
	if contextType == constant.ContextTypeAwaitingQuantity {
		err = repo.Deactivate(ctx,
			specification.BySessionID{SessionID: sessionID},
			specification.ByContextType{ContextType: contextType},
		)
		if err != nil {
			return err
		}
	}

	record := &entity.ConversationContext{
		SessionId:         sessionID,
		ContextType:       contextType,
		Payload:           raw,
		QueryHash:         hash,
		OriginalMessage:   originalMessage,
		PresentedResponse: presentedResponse,
		Active:            true,
	}
	if err := repo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.trim(ctx, repo, sessionID, contextType); err != nil {
		return err
	}

	return uow.Commit()
}

// trim hard-deletes everything beyond the newest retention rows for the
// (session, type) pair.
func (s *contextStoreService) trim(ctx context.Context, repo contract.ConversationContextRepository, sessionID, contextType string) error {
	rows, err := repo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByContextType{ContextType: contextType},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if len(rows) <= s.retention {
		return nil
	}

	stale := make([]uuid.UUID, 0, len(rows)-s.retention)
	for _, row := range rows[s.retention:] {
		stale = append(stale, row.Id)
	}
	s.logger.Debug("context_store", "retention trim", map[string]interface{}{
		"session_id":   sessionID,
		"context_type": contextType,
		"purged":       len(stale),
	})
	return repo.DeleteByIds(ctx, stale)
}

func (s *contextStoreService) Latest(ctx context.Context, sessionID string, contextTypes ...string) (*entity.ConversationContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.BySessionID{SessionID: sessionID},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if len(contextTypes) > 0 {
		specs = append(specs, specification.ByContextTypes{ContextTypes: contextTypes})
	}
	if s.ttl > 0 {
		// Stale contexts read as absent; bounded conversation lifetime.
		specs = append(specs, specification.CreatedAfter{Cutoff: time.Now().Add(-s.ttl)})
	}

	return uow.ConversationContextRepository().FindOne(ctx, specs...)
}

func (s *contextStoreService) Recent(ctx context.Context, sessionID, contextType string, limit int) ([]*entity.ConversationContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.BySessionID{SessionID: sessionID},
		specification.ByContextType{ContextType: contextType},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	}
	if s.ttl > 0 {
		specs = append(specs, specification.CreatedAfter{Cutoff: time.Now().Add(-s.ttl)})
	}

	return uow.ConversationContextRepository().FindAll(ctx, specs...)
}

func (s *contextStoreService) Clear(ctx context.Context, sessionID, contextType string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	return uow.ConversationContextRepository().Deactivate(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByContextType{ContextType: contextType},
	)
}
