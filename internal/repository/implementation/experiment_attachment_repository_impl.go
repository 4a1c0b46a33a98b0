package implementation

import (
	"context"
	"errors"

	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/mapper"
	"labnotebook-be/internal/model"
	"labnotebook-be/internal/repository/contract"
	"labnotebook-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExperimentAttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExperimentAttachmentMapper
}

func NewExperimentAttachmentRepository(db *gorm.DB) contract.ExperimentAttachmentRepository {
	return &ExperimentAttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewExperimentAttachmentMapper(),
	}
}

func (r *ExperimentAttachmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExperimentAttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.ExperimentAttachment) error {
	m := r.mapper.ToModel(attachment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExperimentAttachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ExperimentAttachment{}, id).Error
}

func (r *ExperimentAttachmentRepositoryImpl) DeleteAllByExperimentId(ctx context.Context, experimentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("experiment_id = ?", experimentId).Delete(&model.ExperimentAttachment{}).Error
}

func (r *ExperimentAttachmentRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	sub := r.db.Model(&model.Experiment{}).Select("id").Where("user_id = ?", userId)
	return r.db.WithContext(ctx).Where("experiment_id IN (?)", sub).Delete(&model.ExperimentAttachment{}).Error
}

func (r *ExperimentAttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExperimentAttachment, error) {
	var m model.ExperimentAttachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExperimentAttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExperimentAttachment, error) {
	var models []*model.ExperimentAttachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
