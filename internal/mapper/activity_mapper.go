package mapper

import (
	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/model"
)

type ActivityLogMapper struct{}

func NewActivityLogMapper() *ActivityLogMapper {
	return &ActivityLogMapper{}
}

func (m *ActivityLogMapper) ToEntity(a *model.ActivityLog) *entity.ActivityLog {
	if a == nil {
		return nil
	}
	return &entity.ActivityLog{
		Id:           a.Id,
		UserId:       a.UserId,
		Action:       a.Action,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		Detail:       a.Detail,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *ActivityLogMapper) ToModel(a *entity.ActivityLog) *model.ActivityLog {
	if a == nil {
		return nil
	}
	return &model.ActivityLog{
		Id:           a.Id,
		UserId:       a.UserId,
		Action:       a.Action,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		Detail:       a.Detail,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *ActivityLogMapper) ToEntities(logs []*model.ActivityLog) []*entity.ActivityLog {
	entities := make([]*entity.ActivityLog, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
