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

type ExperimentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExperimentMapper
}

func NewExperimentRepository(db *gorm.DB) contract.ExperimentRepository {
	return &ExperimentRepositoryImpl{
		db:     db,
		mapper: mapper.NewExperimentMapper(),
	}
}

func (r *ExperimentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExperimentRepositoryImpl) Create(ctx context.Context, experiment *entity.Experiment) error {
	m := r.mapper.ToModel(experiment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	steps, attachments := experiment.Steps, experiment.Attachments
	*experiment = *r.mapper.ToEntity(m)
	experiment.Steps, experiment.Attachments = steps, attachments
	return nil
}

func (r *ExperimentRepositoryImpl) Update(ctx context.Context, experiment *entity.Experiment) error {
	m := r.mapper.ToModel(experiment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	steps, attachments := experiment.Steps, experiment.Attachments
	*experiment = *r.mapper.ToEntity(m)
	experiment.Steps, experiment.Attachments = steps, attachments
	return nil
}

func (r *ExperimentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Experiment{}, id).Error
}

func (r *ExperimentRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Experiment{}).Error
}

func (r *ExperimentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Experiment, error) {
	var m model.Experiment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExperimentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Experiment, error) {
	var models []*model.Experiment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExperimentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Experiment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
