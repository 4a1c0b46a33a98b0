package mapper

import (
	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/model"
)

type ExperimentMapper struct{}

func NewExperimentMapper() *ExperimentMapper {
	return &ExperimentMapper{}
}

func (m *ExperimentMapper) ToEntity(e *model.Experiment) *entity.Experiment {
	if e == nil {
		return nil
	}
	return &entity.Experiment{
		Id:          e.Id,
		UserId:      e.UserId,
		Title:       e.Title,
		Hypothesis:  e.Hypothesis,
		Materials:   e.Materials,
		Methods:     e.Methods,
		Results:     e.Results,
		Conclusion:  e.Conclusion,
		References:  e.References,
		Status:      entity.ExperimentStatus(e.Status),
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *ExperimentMapper) ToModel(e *entity.Experiment) *model.Experiment {
	if e == nil {
		return nil
	}
	return &model.Experiment{
		Id:          e.Id,
		UserId:      e.UserId,
		Title:       e.Title,
		Hypothesis:  e.Hypothesis,
		Materials:   e.Materials,
		Methods:     e.Methods,
		Results:     e.Results,
		Conclusion:  e.Conclusion,
		References:  e.References,
		Status:      string(e.Status),
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *ExperimentMapper) ToEntities(experiments []*model.Experiment) []*entity.Experiment {
	entities := make([]*entity.Experiment, len(experiments))
	for i, e := range experiments {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

type ExperimentStepMapper struct{}

func NewExperimentStepMapper() *ExperimentStepMapper {
	return &ExperimentStepMapper{}
}

func (m *ExperimentStepMapper) ToEntity(s *model.ExperimentStep) *entity.ExperimentStep {
	if s == nil {
		return nil
	}
	return &entity.ExperimentStep{
		Id:           s.Id,
		ExperimentId: s.ExperimentId,
		StepNumber:   s.StepNumber,
		Description:  s.Description,
		Observation:  s.Observation,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *ExperimentStepMapper) ToModel(s *entity.ExperimentStep) *model.ExperimentStep {
	if s == nil {
		return nil
	}
	return &model.ExperimentStep{
		Id:           s.Id,
		ExperimentId: s.ExperimentId,
		StepNumber:   s.StepNumber,
		Description:  s.Description,
		Observation:  s.Observation,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *ExperimentStepMapper) ToEntities(steps []*model.ExperimentStep) []*entity.ExperimentStep {
	entities := make([]*entity.ExperimentStep, len(steps))
	for i, s := range steps {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type ExperimentAttachmentMapper struct{}

func NewExperimentAttachmentMapper() *ExperimentAttachmentMapper {
	return &ExperimentAttachmentMapper{}
}

func (m *ExperimentAttachmentMapper) ToEntity(a *model.ExperimentAttachment) *entity.ExperimentAttachment {
	if a == nil {
		return nil
	}
	return &entity.ExperimentAttachment{
		Id:           a.Id,
		ExperimentId: a.ExperimentId,
		FileName:     a.FileName,
		FileType:     a.FileType,
		FilePath:     a.FilePath,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *ExperimentAttachmentMapper) ToModel(a *entity.ExperimentAttachment) *model.ExperimentAttachment {
	if a == nil {
		return nil
	}
	return &model.ExperimentAttachment{
		Id:           a.Id,
		ExperimentId: a.ExperimentId,
		FileName:     a.FileName,
		FileType:     a.FileType,
		FilePath:     a.FilePath,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *ExperimentAttachmentMapper) ToEntities(attachments []*model.ExperimentAttachment) []*entity.ExperimentAttachment {
	entities := make([]*entity.ExperimentAttachment, len(attachments))
	for i, a := range attachments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
