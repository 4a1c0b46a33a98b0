package contract

import (
	"context"

	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExperimentRepository interface {
	Create(ctx context.Context, experiment *entity.Experiment) error
	Update(ctx context.Context, experiment *entity.Experiment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Experiment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Experiment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
