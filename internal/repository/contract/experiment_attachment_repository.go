package contract

import (
	"context"

	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ExperimentAttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.ExperimentAttachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByExperimentId(ctx context.Context, experimentId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExperimentAttachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExperimentAttachment, error)
}
