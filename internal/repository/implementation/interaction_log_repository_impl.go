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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InteractionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LogMapper
}

func NewInteractionLogRepository(db *gorm.DB) contract.InteractionLogRepository {
	return &InteractionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewLogMapper(),
	}
}

func (r *InteractionLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionLogRepositoryImpl) Create(ctx context.Context, log *entity.InteractionLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionLogRepositoryImpl) AttachFeedback(ctx context.Context, id uuid.UUID, feedbackType string, expected []byte) error {
	updates := map[string]interface{}{
		"feedback_type": feedbackType,
	}
	if len(expected) > 0 {
		updates["feedback_expected"] = datatypes.JSON(expected)
	}
	result := r.db.WithContext(ctx).
		Model(&model.InteractionLog{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InteractionLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InteractionLog, error) {
	var m model.InteractionLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InteractionLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionLog, error) {
	var models []*model.InteractionLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.InteractionLog, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.ToEntity(m))
	}
	return entities, nil
}
