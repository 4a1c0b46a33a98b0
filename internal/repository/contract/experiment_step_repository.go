package contract

import (
	"context"

	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExperimentStepRepository interface {
	Create(ctx context.Context, step *entity.ExperimentStep) error
	Update(ctx context.Context, step *entity.ExperimentStep) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByExperimentId(ctx context.Context, experimentId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExperimentStep, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExperimentStep, error)

	// MaxStepNumber returns 0 when the experiment has no steps. Callers must
	// run it in the same transaction as the insert that uses the result.
	MaxStepNumber(ctx context.Context, experimentId uuid.UUID) (int, error)

	// DecrementNumbersAfter shifts every step numbered above the given value
	// down by one, closing the gap a deletion leaves.
	DecrementNumbersAfter(ctx context.Context, experimentId uuid.UUID, number int) error
}
