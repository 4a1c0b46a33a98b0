package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/pkg/apperror"
	"labnotebook-be/internal/repository/specification"
	"labnotebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExperimentTest(t *testing.T) (service.IExperimentService, service.IAuthService, uuid.UUID) {
	t.Helper()

	factory := newTestFactory(t)
	authService := service.NewAuthService(factory)
	experimentService := service.NewExperimentService(factory, &capturePublisher{})
	userId := signupTestUser(t, authService, "alice", "alice@example.com")
	return experimentService, authService, userId
}

func createTestExperiment(t *testing.T, svc service.IExperimentService, userId uuid.UUID, stepCount int) *dto.ExperimentResponse {
	t.Helper()

	steps := make([]dto.StepInputRequest, 0, stepCount)
	for i := 0; i < stepCount; i++ {
		steps = append(steps, dto.StepInputRequest{
			Description: fmt.Sprintf("Step %c", 'A'+i),
		})
	}

	resp, err := svc.Create(context.Background(), userId, &dto.CreateExperimentRequest{
		Title:      "Yeast growth under blue light",
		Hypothesis: "Blue light slows culture growth",
		Methods:    "Two incubators, one lit, measure OD600 hourly",
		Steps:      steps,
	})
	require.NoError(t, err)
	return resp
}

func TestExperimentCreate(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	resp := createTestExperiment(t, svc, userId, 3)

	assert.Equal(t, "planned", resp.Status)
	assert.Nil(t, resp.StartedAt)
	assert.Nil(t, resp.CompletedAt)
	assert.Empty(t, resp.Attachments)

	require.Len(t, resp.Steps, 3)
	for i, step := range resp.Steps {
		assert.Equal(t, i+1, step.StepNumber)
	}
	assert.Equal(t, "Step A", resp.Steps[0].Description)
	assert.Equal(t, "Step C", resp.Steps[2].Description)

	shown, err := svc.Show(ctx, userId, resp.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Steps, 3)

	t.Run("Empty step description rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, userId, &dto.CreateExperimentRequest{
			Title:      "x",
			Hypothesis: "y",
			Methods:    "z",
			Steps:      []dto.StepInputRequest{{Description: ""}},
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
	})
}

func TestExperimentAddStepAppends(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 2)

	step, err := svc.AddStep(ctx, userId, experiment.Id, &dto.AddStepRequest{
		Description: "Record final OD600",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, step.StepNumber)

	t.Run("First step of an empty experiment is number 1", func(t *testing.T) {
		empty := createTestExperiment(t, svc, userId, 0)
		step, err := svc.AddStep(ctx, userId, empty.Id, &dto.AddStepRequest{Description: "Prepare cultures"})
		require.NoError(t, err)
		assert.Equal(t, 1, step.StepNumber)
	})
}

func TestExperimentConcurrentAddSteps(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 0)

	// Without per-experiment serialization two in-flight AddStep calls can
	// both read MAX=N and both insert N+1; nothing at the storage level
	// rejects the duplicate.
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.AddStep(ctx, userId, experiment.Id, &dto.AddStepRequest{
				Description: fmt.Sprintf("Parallel step %d", n),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	shown, err := svc.Show(ctx, userId, experiment.Id)
	require.NoError(t, err)
	require.Len(t, shown.Steps, workers)

	seen := make(map[int]bool)
	for _, step := range shown.Steps {
		assert.False(t, seen[step.StepNumber], "step number %d assigned twice", step.StepNumber)
		seen[step.StepNumber] = true
	}
	for n := 1; n <= workers; n++ {
		assert.True(t, seen[n], "missing step number %d", n)
	}
}

func TestExperimentDeleteStepRenumbers(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 4)

	// Remove step 2 ("Step B"): the rest close ranks to 1..3.
	err := svc.DeleteStep(ctx, userId, experiment.Id, experiment.Steps[1].Id)
	require.NoError(t, err)

	shown, err := svc.Show(ctx, userId, experiment.Id)
	require.NoError(t, err)
	require.Len(t, shown.Steps, 3)

	assert.Equal(t, []string{"Step A", "Step C", "Step D"}, []string{
		shown.Steps[0].Description, shown.Steps[1].Description, shown.Steps[2].Description,
	})
	for i, step := range shown.Steps {
		assert.Equal(t, i+1, step.StepNumber)
	}

	t.Run("Append after delete continues from new maximum", func(t *testing.T) {
		step, err := svc.AddStep(ctx, userId, experiment.Id, &dto.AddStepRequest{Description: "Step E"})
		require.NoError(t, err)
		assert.Equal(t, 4, step.StepNumber)
	})
}

func TestExperimentUpdateReplacesSteps(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 3)

	newSteps := []dto.StepInputRequest{
		{Description: "Sterilize equipment"},
		{Description: "Inoculate both flasks"},
	}
	updated, err := svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
		Id:    experiment.Id,
		Steps: &newSteps,
	})
	require.NoError(t, err)

	require.Len(t, updated.Steps, 2)
	assert.Equal(t, 1, updated.Steps[0].StepNumber)
	assert.Equal(t, "Sterilize equipment", updated.Steps[0].Description)
	assert.Equal(t, 2, updated.Steps[1].StepNumber)

	t.Run("Nil steps leaves the step set untouched", func(t *testing.T) {
		updated, err := svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
			Id:    experiment.Id,
			Title: strPtr("Renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Len(t, updated.Steps, 2)
	})

	t.Run("Empty array clears every step", func(t *testing.T) {
		empty := []dto.StepInputRequest{}
		updated, err := svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
			Id:    experiment.Id,
			Steps: &empty,
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Steps)
	})
}

func TestExperimentStatusStamping(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 0)

	updated, err := svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
		Id:     experiment.Id,
		Status: strPtr("in_progress"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.StartedAt)
	assert.Nil(t, updated.CompletedAt)
	firstStart := *updated.StartedAt

	updated, err = svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
		Id:     experiment.Id,
		Status: strPtr("completed"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	firstCompletion := *updated.CompletedAt

	// Cycling back through the statuses must not move either stamp.
	for _, status := range []string{"planned", "in_progress", "completed"} {
		updated, err = svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
			Id:     experiment.Id,
			Status: strPtr(status),
		})
		require.NoError(t, err)
	}
	require.NotNil(t, updated.StartedAt)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.StartedAt.Equal(firstStart))
	assert.True(t, updated.CompletedAt.Equal(firstCompletion))

	t.Run("Failed experiments get no completion stamp", func(t *testing.T) {
		other := createTestExperiment(t, svc, userId, 0)
		updated, err := svc.Update(ctx, userId, &dto.UpdateExperimentRequest{
			Id:     other.Id,
			Status: strPtr("failed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "failed", updated.Status)
		assert.Nil(t, updated.StartedAt)
		assert.Nil(t, updated.CompletedAt)
	})
}

func TestExperimentOwnershipScoping(t *testing.T) {
	svc, authService, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 1)
	intruderId := signupTestUser(t, authService, "mallory", "mallory@example.com")

	assertNotFound := func(t *testing.T, err error) {
		t.Helper()
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusNotFound, appErr.Code)
	}

	_, err := svc.Show(ctx, intruderId, experiment.Id)
	assertNotFound(t, err)

	_, err = svc.Update(ctx, intruderId, &dto.UpdateExperimentRequest{
		Id:    experiment.Id,
		Title: strPtr("hijacked"),
	})
	assertNotFound(t, err)

	err = svc.Delete(ctx, intruderId, experiment.Id)
	assertNotFound(t, err)

	_, err = svc.AddStep(ctx, intruderId, experiment.Id, &dto.AddStepRequest{Description: "x"})
	assertNotFound(t, err)

	// The owner still sees everything intact.
	shown, err := svc.Show(ctx, userId, experiment.Id)
	require.NoError(t, err)
	assert.Equal(t, "Yeast growth under blue light", shown.Title)
}

func TestExperimentStepTimestamps(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 1)
	stepId := experiment.Steps[0].Id

	updated, err := svc.UpdateStep(ctx, userId, experiment.Id, stepId, &dto.UpdateStepRequest{
		Observation: strPtr("OD600 at 0.42"),
		StartedAt:   strPtr("2026-08-30T09:15:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.StartedAt)
	assert.Equal(t, "OD600 at 0.42", updated.Observation)

	t.Run("Malformed timestamp is a validation error", func(t *testing.T) {
		_, err := svc.UpdateStep(ctx, userId, experiment.Id, stepId, &dto.UpdateStepRequest{
			CompletedAt: strPtr("yesterday around noon"),
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
	})

	t.Run("Empty description is rejected", func(t *testing.T) {
		_, err := svc.UpdateStep(ctx, userId, experiment.Id, stepId, &dto.UpdateStepRequest{
			Description: strPtr(""),
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
	})

	t.Run("Unknown step is NotFound", func(t *testing.T) {
		_, err := svc.UpdateStep(ctx, userId, experiment.Id, uuid.New(), &dto.UpdateStepRequest{
			Observation: strPtr("x"),
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusNotFound, appErr.Code)
	})
}

func TestExperimentAttachments(t *testing.T) {
	svc, _, userId := setupExperimentTest(t)
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 0)

	attachment, err := svc.AddAttachment(ctx, userId, experiment.Id, &dto.AddAttachmentRequest{
		FileName: "growth_curve.png",
		FileType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("/uploads/%s/growth_curve.png", experiment.Id), attachment.FilePath)

	withPath, err := svc.AddAttachment(ctx, userId, experiment.Id, &dto.AddAttachmentRequest{
		FileName: "raw_data.csv",
		FileType: "text/csv",
		FilePath: "/archive/2026/raw_data.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "/archive/2026/raw_data.csv", withPath.FilePath)

	shown, err := svc.Show(ctx, userId, experiment.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Attachments, 2)

	require.NoError(t, svc.DeleteAttachment(ctx, userId, experiment.Id, attachment.Id))

	shown, err = svc.Show(ctx, userId, experiment.Id)
	require.NoError(t, err)
	require.Len(t, shown.Attachments, 1)
	assert.Equal(t, "raw_data.csv", shown.Attachments[0].FileName)

	t.Run("Deleting a missing attachment is NotFound", func(t *testing.T) {
		err := svc.DeleteAttachment(ctx, userId, experiment.Id, uuid.New())
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusNotFound, appErr.Code)
	})
}

func TestExperimentDeleteCascades(t *testing.T) {
	factory := newTestFactory(t)
	authService := service.NewAuthService(factory)
	svc := service.NewExperimentService(factory, &capturePublisher{})
	userId := signupTestUser(t, authService, "alice", "alice@example.com")
	ctx := context.Background()

	experiment := createTestExperiment(t, svc, userId, 3)
	_, err := svc.AddAttachment(ctx, userId, experiment.Id, &dto.AddAttachmentRequest{
		FileName: "notes.txt",
		FileType: "text/plain",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, experiment.Id))

	_, err = svc.Show(ctx, userId, experiment.Id)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)

	// Children must not be orphaned in storage.
	uow := factory.NewUnitOfWork(ctx)
	count, err := uow.ExperimentRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	steps, err := uow.ExperimentStepRepository().FindAll(ctx,
		specification.ByExperimentID{ExperimentID: experiment.Id})
	require.NoError(t, err)
	assert.Empty(t, steps)

	attachments, err := uow.ExperimentAttachmentRepository().FindAll(ctx,
		specification.ByExperimentID{ExperimentID: experiment.Id})
	require.NoError(t, err)
	assert.Empty(t, attachments)
}
