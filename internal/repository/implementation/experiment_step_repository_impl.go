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

type ExperimentStepRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExperimentStepMapper
}

func NewExperimentStepRepository(db *gorm.DB) contract.ExperimentStepRepository {
	return &ExperimentStepRepositoryImpl{
		db:     db,
		mapper: mapper.NewExperimentStepMapper(),
	}
}

func (r *ExperimentStepRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExperimentStepRepositoryImpl) Create(ctx context.Context, step *entity.ExperimentStep) error {
	m := r.mapper.ToModel(step)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExperimentStepRepositoryImpl) Update(ctx context.Context, step *entity.ExperimentStep) error {
	m := r.mapper.ToModel(step)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExperimentStepRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ExperimentStep{}, id).Error
}

func (r *ExperimentStepRepositoryImpl) DeleteAllByExperimentId(ctx context.Context, experimentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("experiment_id = ?", experimentId).Delete(&model.ExperimentStep{}).Error
}

func (r *ExperimentStepRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	sub := r.db.Model(&model.Experiment{}).Select("id").Where("user_id = ?", userId)
	return r.db.WithContext(ctx).Where("experiment_id IN (?)", sub).Delete(&model.ExperimentStep{}).Error
}

func (r *ExperimentStepRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExperimentStep, error) {
	var m model.ExperimentStep
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExperimentStepRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExperimentStep, error) {
	var models []*model.ExperimentStep
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExperimentStepRepositoryImpl) MaxStepNumber(ctx context.Context, experimentId uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.ExperimentStep{}).
		Where("experiment_id = ?", experimentId).
		Select("MAX(step_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *ExperimentStepRepositoryImpl) DecrementNumbersAfter(ctx context.Context, experimentId uuid.UUID, number int) error {
	return r.db.WithContext(ctx).
		Model(&model.ExperimentStep{}).
		Where("experiment_id = ? AND step_number > ?", experimentId, number).
		UpdateColumn("step_number", gorm.Expr("step_number - 1")).Error
}
