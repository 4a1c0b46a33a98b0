package service

import (
	"context"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/repository/specification"
	"labnotebook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const activityFeedLimit = 50

type IActivityService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityLogResponse, error)
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory) IActivityService {
	return &activityService{
		uowFactory: uowFactory,
	}
}

func (c *activityService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityLogResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	logs, err := uow.ActivityLogRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: activityFeedLimit},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ActivityLogResponse, len(logs))
	for i, entry := range logs {
		response[i] = &dto.ActivityLogResponse{
			Id:           entry.Id,
			Action:       entry.Action,
			ResourceType: entry.ResourceType,
			ResourceId:   entry.ResourceId,
			Detail:       entry.Detail,
			CreatedAt:    entry.CreatedAt,
		}
	}
	return response, nil
}
