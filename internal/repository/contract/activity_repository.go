package contract

import (
	"context"

	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error)
}
