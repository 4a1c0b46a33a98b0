package service_test

import (
	"context"
	"testing"

	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/pkg/apperror"
	"labnotebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	factory := newTestFactory(t)
	svc := service.NewAuthService(factory)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken, "signup logs the user in immediately")
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEqual(t, uuid.Nil, resp.User.Id)

	t.Run("Duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Signup(ctx, &dto.SignupRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "secret123",
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusConflict, appErr.Code)
		assert.Equal(t, "Email already registered", appErr.Message)
	})

	t.Run("Duplicate username is a conflict", func(t *testing.T) {
		_, err := svc.Signup(ctx, &dto.SignupRequest{
			Username: "alice",
			Email:    "alice2@example.com",
			Password: "secret123",
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusConflict, appErr.Code)
		assert.Equal(t, "Username already taken", appErr.Message)
	})

	// Neither rejected attempt may leave a second row behind.
	count, err := factory.NewUnitOfWork(ctx).UserRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	factory := newTestFactory(t)
	svc := service.NewAuthService(factory)
	ctx := context.Background()

	userId := signupTestUser(t, svc, "alice", "alice@example.com")

	resp, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, userId, resp.User.Id)

	assertUnauthenticated := func(t *testing.T, err error) {
		t.Helper()
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "not-the-password",
		})
		assertUnauthenticated(t, err)
	})

	t.Run("Unknown email gets the same answer as a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		assertUnauthenticated(t, err)
	})
}

func TestMe(t *testing.T) {
	factory := newTestFactory(t)
	svc := service.NewAuthService(factory)
	ctx := context.Background()

	userId := signupTestUser(t, svc, "alice", "alice@example.com")

	me, err := svc.Me(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "alice@example.com", me.Email)

	t.Run("Unknown user id", func(t *testing.T) {
		_, err := svc.Me(ctx, uuid.New())
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnauthorized, appErr.Code)
	})
}

func TestDeleteAccountCascades(t *testing.T) {
	factory := newTestFactory(t)
	authService := service.NewAuthService(factory)
	publisher := &capturePublisher{}
	noteService := service.NewNoteService(factory, publisher)
	experimentService := service.NewExperimentService(factory, publisher)
	ctx := context.Background()

	userId := signupTestUser(t, authService, "alice", "alice@example.com")
	keeperId := signupTestUser(t, authService, "bob", "bob@example.com")

	_, err := noteService.Create(ctx, userId, &dto.CreateNoteRequest{
		Title: "doomed note", Content: "x",
	})
	require.NoError(t, err)

	experiment, err := experimentService.Create(ctx, userId, &dto.CreateExperimentRequest{
		Title:      "doomed experiment",
		Hypothesis: "h",
		Methods:    "m",
		Steps:      []dto.StepInputRequest{{Description: "step one"}},
	})
	require.NoError(t, err)
	_, err = experimentService.AddAttachment(ctx, userId, experiment.Id, &dto.AddAttachmentRequest{
		FileName: "data.csv", FileType: "text/csv",
	})
	require.NoError(t, err)

	kept, err := noteService.Create(ctx, keeperId, &dto.CreateNoteRequest{
		Title: "bob's note", Content: "survives",
	})
	require.NoError(t, err)

	require.NoError(t, authService.DeleteAccount(ctx, userId))

	// The account and every owned row are gone.
	_, err = authService.Login(ctx, &dto.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, appErr.Code)

	_, err = experimentService.Show(ctx, userId, experiment.Id)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)

	// Unrelated accounts are untouched.
	shown, err := noteService.Show(ctx, keeperId, kept.Id)
	require.NoError(t, err)
	assert.Equal(t, "bob's note", shown.Title)

	t.Run("Deleting twice is NotFound", func(t *testing.T) {
		err := authService.DeleteAccount(ctx, userId)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusNotFound, appErr.Code)
	})
}
