package implementation

import (
	"context"
	"errors"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/mapper"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContextMapper
}

func NewConversationContextRepository(db *gorm.DB) contract.ConversationContextRepository {
	return &ConversationContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewContextMapper(),
	}
}

func (r *ConversationContextRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationContextRepositoryImpl) Create(ctx context.Context, record *entity.ConversationContext) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationContextRepositoryImpl) Deactivate(ctx context.Context, specs ...specification.Specification) error {
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationContext{}), specs...)
	return query.Update("active", false).Error
}

func (r *ConversationContextRepositoryImpl) DeleteWhere(ctx context.Context, specs ...specification.Specification) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	return query.Delete(&model.ConversationContext{}).Error
}

func (r *ConversationContextRepositoryImpl) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ConversationContext{}).Error
}

func (r *ConversationContextRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationContext, error) {
	var m model.ConversationContext
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationContextRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationContext, error) {
	var models []*model.ConversationContext
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationContextRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationContext{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
