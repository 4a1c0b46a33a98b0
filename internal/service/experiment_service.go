// FILE: internal/service/experiment_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/entity"
	"labnotebook-be/internal/pkg/apperror"
	"labnotebook-be/internal/repository/specification"
	"labnotebook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IExperimentService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ExperimentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExperimentResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateExperimentRequest) (*dto.ExperimentResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateExperimentRequest) (*dto.ExperimentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error

	AddStep(ctx context.Context, userId uuid.UUID, experimentId uuid.UUID, req *dto.AddStepRequest) (*dto.StepResponse, error)
	UpdateStep(ctx context.Context, userId uuid.UUID, experimentId, stepId uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error)
	DeleteStep(ctx context.Context, userId uuid.UUID, experimentId, stepId uuid.UUID) error

	AddAttachment(ctx context.Context, userId uuid.UUID, experimentId uuid.UUID, req *dto.AddAttachmentRequest) (*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, userId uuid.UUID, experimentId, attachmentId uuid.UUID) error
}

type experimentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService

	// stepLocks serializes step mutations per experiment. Two concurrent
	// AddStep calls must not read the same high-water mark, and a renumber
	// must not interleave with an insert or replacement.
	stepLocks sync.Map // experiment id -> *sync.Mutex
}

func NewExperimentService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IExperimentService {
	return &experimentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *experimentService) lockSteps(experimentId uuid.UUID) func() {
	m, _ := c.stepLocks.LoadOrStore(experimentId, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func toStepResponse(step *entity.ExperimentStep) *dto.StepResponse {
	return &dto.StepResponse{
		Id:           step.Id,
		ExperimentId: step.ExperimentId,
		StepNumber:   step.StepNumber,
		Description:  step.Description,
		Observation:  step.Observation,
		StartedAt:    step.StartedAt,
		CompletedAt:  step.CompletedAt,
		CreatedAt:    step.CreatedAt,
		UpdatedAt:    step.UpdatedAt,
	}
}

func toAttachmentResponse(attachment *entity.ExperimentAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:           attachment.Id,
		ExperimentId: attachment.ExperimentId,
		FileName:     attachment.FileName,
		FileType:     attachment.FileType,
		FilePath:     attachment.FilePath,
		Description:  attachment.Description,
		CreatedAt:    attachment.CreatedAt,
	}
}

func toExperimentResponse(experiment *entity.Experiment) *dto.ExperimentResponse {
	steps := make([]*dto.StepResponse, len(experiment.Steps))
	for i, s := range experiment.Steps {
		steps[i] = toStepResponse(s)
	}
	attachments := make([]*dto.AttachmentResponse, len(experiment.Attachments))
	for i, a := range experiment.Attachments {
		attachments[i] = toAttachmentResponse(a)
	}

	return &dto.ExperimentResponse{
		Id:          experiment.Id,
		UserId:      experiment.UserId,
		Title:       experiment.Title,
		Hypothesis:  experiment.Hypothesis,
		Materials:   experiment.Materials,
		Methods:     experiment.Methods,
		Results:     experiment.Results,
		Conclusion:  experiment.Conclusion,
		References:  experiment.References,
		Status:      string(experiment.Status),
		StartedAt:   experiment.StartedAt,
		CompletedAt: experiment.CompletedAt,
		CreatedAt:   experiment.CreatedAt,
		UpdatedAt:   experiment.UpdatedAt,
		Steps:       steps,
		Attachments: attachments,
	}
}

func parseTimestamp(value string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperror.NewValidation(fmt.Sprintf("Invalid timestamp: %s", value))
	}
	return &t, nil
}

func (c *experimentService) publishActivity(ctx context.Context, userId uuid.UUID, action string, experimentId uuid.UUID, detail string) {
	msg := dto.PublishActivityMessage{
		UserId:       userId,
		Action:       action,
		ResourceType: "experiment",
		ResourceId:   experimentId,
		Detail:       detail,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", action, err)
	}
}

// findOwned loads an experiment scoped to its owner. Foreign-owned and
// missing experiments are both NotFound.
func (c *experimentService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Experiment, error) {
	experiment, err := uow.ExperimentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if experiment == nil {
		return nil, apperror.NewNotFound("Experiment")
	}
	return experiment, nil
}

func (c *experimentService) loadChildren(ctx context.Context, uow unitofwork.UnitOfWork, experiment *entity.Experiment) error {
	steps, err := uow.ExperimentStepRepository().FindAll(ctx,
		specification.ByExperimentID{ExperimentID: experiment.Id},
		specification.OrderBy{Field: "step_number", Desc: false},
	)
	if err != nil {
		return err
	}
	attachments, err := uow.ExperimentAttachmentRepository().FindAll(ctx,
		specification.ByExperimentID{ExperimentID: experiment.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return err
	}

	experiment.Steps = steps
	experiment.Attachments = attachments
	return nil
}

func (c *experimentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ExperimentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	experiments, err := uow.ExperimentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ExperimentResponse, len(experiments))
	for i, experiment := range experiments {
		if err := c.loadChildren(ctx, uow, experiment); err != nil {
			return nil, err
		}
		response[i] = toExperimentResponse(experiment)
	}
	return response, nil
}

func (c *experimentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExperimentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	experiment, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	if err := c.loadChildren(ctx, uow, experiment); err != nil {
		return nil, err
	}

	return toExperimentResponse(experiment), nil
}

func (c *experimentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateExperimentRequest) (*dto.ExperimentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	experiment := entity.Experiment{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      req.Title,
		Hypothesis: req.Hypothesis,
		Materials:  req.Materials,
		Methods:    req.Methods,
		Status:     entity.ExperimentStatusPlanned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	steps, err := buildSteps(experiment.Id, req.Steps, now)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ExperimentRepository().Create(ctx, &experiment); err != nil {
		return nil, err
	}
	for _, step := range steps {
		if err := uow.ExperimentStepRepository().Create(ctx, step); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	experiment.Steps = steps
	experiment.Attachments = []*entity.ExperimentAttachment{}

	c.publishActivity(ctx, userId, "EXPERIMENT_CREATED", experiment.Id, experiment.Title)

	return toExperimentResponse(&experiment), nil
}

// buildSteps numbers the given inputs 1..N in input order.
func buildSteps(experimentId uuid.UUID, inputs []dto.StepInputRequest, now time.Time) ([]*entity.ExperimentStep, error) {
	steps := make([]*entity.ExperimentStep, 0, len(inputs))
	for i, input := range inputs {
		if input.Description == "" {
			return nil, apperror.NewValidation("Step description is required")
		}

		step := &entity.ExperimentStep{
			Id:           uuid.New(),
			ExperimentId: experimentId,
			StepNumber:   i + 1,
			Description:  input.Description,
			Observation:  input.Observation,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if input.StartedAt != nil && *input.StartedAt != "" {
			t, err := parseTimestamp(*input.StartedAt)
			if err != nil {
				return nil, err
			}
			step.StartedAt = t
		}
		if input.CompletedAt != nil && *input.CompletedAt != "" {
			t, err := parseTimestamp(*input.CompletedAt)
			if err != nil {
				return nil, err
			}
			step.CompletedAt = t
		}

		steps = append(steps, step)
	}
	return steps, nil
}

func (c *experimentService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateExperimentRequest) (*dto.ExperimentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	experiment, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		experiment.Title = *req.Title
	}
	if req.Hypothesis != nil {
		experiment.Hypothesis = *req.Hypothesis
	}
	if req.Materials != nil {
		experiment.Materials = *req.Materials
	}
	if req.Methods != nil {
		experiment.Methods = *req.Methods
	}
	if req.Results != nil {
		experiment.Results = *req.Results
	}
	if req.Conclusion != nil {
		experiment.Conclusion = *req.Conclusion
	}
	if req.References != nil {
		experiment.References = *req.References
	}

	statusChanged := false
	if req.Status != nil {
		// Transitions are caller-driven and unrestricted. The only side
		// effect is stamping started_at/completed_at the first time the
		// experiment enters the corresponding status.
		oldStatus := experiment.Status
		newStatus := entity.ExperimentStatus(*req.Status)
		experiment.Status = newStatus
		statusChanged = oldStatus != newStatus

		now := time.Now()
		if oldStatus != entity.ExperimentStatusInProgress &&
			newStatus == entity.ExperimentStatusInProgress &&
			experiment.StartedAt == nil {
			experiment.StartedAt = &now
		}
		if oldStatus != entity.ExperimentStatusCompleted &&
			newStatus == entity.ExperimentStatusCompleted &&
			experiment.CompletedAt == nil {
			experiment.CompletedAt = &now
		}
	}

	experiment.UpdatedAt = time.Now()

	var newSteps []*entity.ExperimentStep
	if req.Steps != nil {
		newSteps, err = buildSteps(experiment.Id, *req.Steps, time.Now())
		if err != nil {
			return nil, err
		}
	}

	if req.Steps != nil {
		unlock := c.lockSteps(experiment.Id)
		defer unlock()
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ExperimentRepository().Update(ctx, experiment); err != nil {
		return nil, err
	}

	if req.Steps != nil {
		// Destructive full replacement: drop every existing step, then
		// insert the new ones numbered from 1, all in this transaction.
		if err := uow.ExperimentStepRepository().DeleteAllByExperimentId(ctx, experiment.Id); err != nil {
			return nil, err
		}
		for _, step := range newSteps {
			if err := uow.ExperimentStepRepository().Create(ctx, step); err != nil {
				return nil, err
			}
		}
	}

	// Children are read inside the transaction: once Commit succeeds the
	// response is already in hand, so a late read failure cannot turn a
	// persisted update into an error.
	if err := c.loadChildren(ctx, uow, experiment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if statusChanged {
		c.publishActivity(ctx, userId, "EXPERIMENT_STATUS_CHANGED", experiment.Id, string(experiment.Status))
	}

	return toExperimentResponse(experiment), nil
}

func (c *experimentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	experiment, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ExperimentStepRepository().DeleteAllByExperimentId(ctx, id); err != nil {
		return err
	}
	if err := uow.ExperimentAttachmentRepository().DeleteAllByExperimentId(ctx, id); err != nil {
		return err
	}
	if err := uow.ExperimentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.publishActivity(ctx, userId, "EXPERIMENT_DELETED", id, experiment.Title)

	return nil
}

func (c *experimentService) AddStep(ctx context.Context, userId uuid.UUID, experimentId uuid.UUID, req *dto.AddStepRequest) (*dto.StepResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwned(ctx, uow, userId, experimentId); err != nil {
		return nil, err
	}

	// Serialized per experiment: (experiment_id, step_number) carries no
	// unique constraint, so nothing at the database level would reject two
	// transactions that both read MAX=N and both insert N+1.
	unlock := c.lockSteps(experimentId)
	defer unlock()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	highest, err := uow.ExperimentStepRepository().MaxStepNumber(ctx, experimentId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	step := entity.ExperimentStep{
		Id:           uuid.New(),
		ExperimentId: experimentId,
		StepNumber:   highest + 1,
		Description:  req.Description,
		Observation:  req.Observation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.ExperimentStepRepository().Create(ctx, &step); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toStepResponse(&step), nil
}

func (c *experimentService) findOwnedStep(ctx context.Context, uow unitofwork.UnitOfWork, userId, experimentId, stepId uuid.UUID) (*entity.ExperimentStep, error) {
	if _, err := c.findOwned(ctx, uow, userId, experimentId); err != nil {
		return nil, err
	}

	step, err := uow.ExperimentStepRepository().FindOne(ctx,
		specification.ByID{ID: stepId},
		specification.ByExperimentID{ExperimentID: experimentId},
	)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, apperror.NewNotFound("Step")
	}
	return step, nil
}

func (c *experimentService) UpdateStep(ctx context.Context, userId uuid.UUID, experimentId, stepId uuid.UUID, req *dto.UpdateStepRequest) (*dto.StepResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	step, err := c.findOwnedStep(ctx, uow, userId, experimentId, stepId)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, apperror.NewValidation("Step description is required")
		}
		step.Description = *req.Description
	}
	if req.Observation != nil {
		step.Observation = *req.Observation
	}
	if req.StartedAt != nil && *req.StartedAt != "" {
		t, err := parseTimestamp(*req.StartedAt)
		if err != nil {
			return nil, err
		}
		step.StartedAt = t
	}
	if req.CompletedAt != nil && *req.CompletedAt != "" {
		t, err := parseTimestamp(*req.CompletedAt)
		if err != nil {
			return nil, err
		}
		step.CompletedAt = t
	}
	step.UpdatedAt = time.Now()

	if err := uow.ExperimentStepRepository().Update(ctx, step); err != nil {
		return nil, err
	}

	return toStepResponse(step), nil
}

func (c *experimentService) DeleteStep(ctx context.Context, userId uuid.UUID, experimentId, stepId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// The lock covers the step_number read: a concurrent renumber between
	// the read and the decrement would shift the wrong rows.
	unlock := c.lockSteps(experimentId)
	defer unlock()

	step, err := c.findOwnedStep(ctx, uow, userId, experimentId, stepId)
	if err != nil {
		return err
	}

	// Delete and renumber must land together: a crash in between would
	// leave a stored gap in the 1..N sequence.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ExperimentStepRepository().Delete(ctx, stepId); err != nil {
		return err
	}
	if err := uow.ExperimentStepRepository().DecrementNumbersAfter(ctx, experimentId, step.StepNumber); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *experimentService) AddAttachment(ctx context.Context, userId uuid.UUID, experimentId uuid.UUID, req *dto.AddAttachmentRequest) (*dto.AttachmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwned(ctx, uow, userId, experimentId); err != nil {
		return nil, err
	}

	filePath := req.FilePath
	if filePath == "" {
		filePath = fmt.Sprintf("/uploads/%s/%s", experimentId, req.FileName)
	}

	attachment := entity.ExperimentAttachment{
		Id:           uuid.New(),
		ExperimentId: experimentId,
		FileName:     req.FileName,
		FileType:     req.FileType,
		FilePath:     filePath,
		Description:  req.Description,
		CreatedAt:    time.Now(),
	}

	if err := uow.ExperimentAttachmentRepository().Create(ctx, &attachment); err != nil {
		return nil, err
	}

	return toAttachmentResponse(&attachment), nil
}

func (c *experimentService) DeleteAttachment(ctx context.Context, userId uuid.UUID, experimentId, attachmentId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if _, err := c.findOwned(ctx, uow, userId, experimentId); err != nil {
		return err
	}

	attachment, err := uow.ExperimentAttachmentRepository().FindOne(ctx,
		specification.ByID{ID: attachmentId},
		specification.ByExperimentID{ExperimentID: experimentId},
	)
	if err != nil {
		return err
	}
	if attachment == nil {
		return apperror.NewNotFound("Attachment")
	}

	return uow.ExperimentAttachmentRepository().Delete(ctx, attachmentId)
}
