package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/internal/repository/unitofwork"
)

const aliasCacheKey = "unit_aliases"

type IAliasCacheService interface {
	// Aliases returns alias -> canonical unit, read through the cache.
	Aliases(ctx context.Context) (map[string]string, error)
	// Refresh drops the cached dictionary and reloads it.
	Refresh(ctx context.Context) (int, error)
}

// aliasCacheService is the read-through cache in front of the
// unit_aliases table. The dictionary is consulted on every search turn,
// so it must not hit the store per request.
type aliasCacheService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewAliasCacheService(uowFactory unitofwork.RepositoryFactory, ttl time.Duration, log logger.ILogger) IAliasCacheService {
	return &aliasCacheService{
		uowFactory: uowFactory,
		cache:      cache.New(ttl, 10*time.Minute),
		logger:     log,
	}
}

func (s *aliasCacheService) Aliases(ctx context.Context) (map[string]string, error) {
	if x, found := s.cache.Get(aliasCacheKey); found {
		return x.(map[string]string), nil
	}
	return s.load(ctx)
}

func (s *aliasCacheService) Refresh(ctx context.Context) (int, error) {
	s.cache.Delete(aliasCacheKey)
	aliases, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(aliases), nil
}

func (s *aliasCacheService) load(ctx context.Context) (map[string]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.UnitAliasRepository().FindAll(ctx, specification.ByActiveAlias{})
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]string, len(rows))
	for _, row := range rows {
		aliases[row.Alias] = row.Unit
	}
	s.cache.Set(aliasCacheKey, aliases, cache.DefaultExpiration)
	s.logger.Debug("alias_cache", "dictionary loaded", map[string]interface{}{
		"aliases": len(aliases),
	})
	return aliases, nil
}
