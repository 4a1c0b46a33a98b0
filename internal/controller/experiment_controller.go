package controller

import (
	"labnotebook-be/internal/dto"
	"labnotebook-be/internal/pkg/apperror"
	"labnotebook-be/internal/pkg/serverutils"
	"labnotebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IExperimentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddStep(ctx *fiber.Ctx) error
	UpdateStep(ctx *fiber.Ctx) error
	DeleteStep(ctx *fiber.Ctx) error
	AddAttachment(ctx *fiber.Ctx) error
	DeleteAttachment(ctx *fiber.Ctx) error
}

type experimentController struct {
	experimentService service.IExperimentService
}

func NewExperimentController(experimentService service.IExperimentService) IExperimentController {
	return &experimentController{
		experimentService: experimentService,
	}
}

func (c *experimentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/experiment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)

	h.Post(":id/steps", c.AddStep)
	h.Put(":id/steps/:stepId", c.UpdateStep)
	h.Delete(":id/steps/:stepId", c.DeleteStep)

	h.Post(":id/attachments", c.AddAttachment)
	h.Delete(":id/attachments/:attachmentId", c.DeleteAttachment)
}

func (c *experimentController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.experimentService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list experiments", res))
}

func (c *experimentController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}

	res, err := c.experimentService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show experiment", res))
}

func (c *experimentController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateExperimentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.experimentService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create experiment", res))
}

func (c *experimentController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}

	var req dto.UpdateExperimentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.experimentService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update experiment", res))
}

func (c *experimentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}

	if err := c.experimentService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete experiment", nil))
}

func (c *experimentController) AddStep(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}

	var req dto.AddStepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.experimentService.AddStep(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success add step", res))
}

func (c *experimentController) UpdateStep(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}
	stepId, err := uuid.Parse(ctx.Params("stepId"))
	if err != nil {
		return apperror.NewInvalidIdentifier("step")
	}

	var req dto.UpdateStepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.experimentService.UpdateStep(ctx.Context(), userId, id, stepId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update step", res))
}

func (c *experimentController) DeleteStep(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}
	stepId, err := uuid.Parse(ctx.Params("stepId"))
	if err != nil {
		return apperror.NewInvalidIdentifier("step")
	}

	if err := c.experimentService.DeleteStep(ctx.Context(), userId, id, stepId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete step", nil))
}

func (c *experimentController) AddAttachment(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}

	var req dto.AddAttachmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.experimentService.AddAttachment(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success add attachment", res))
}

func (c *experimentController) DeleteAttachment(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewInvalidIdentifier("experiment")
	}
	attachmentId, err := uuid.Parse(ctx.Params("attachmentId"))
	if err != nil {
		return apperror.NewInvalidIdentifier("attachment")
	}

	if err := c.experimentService.DeleteAttachment(ctx.Context(), userId, id, attachmentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete attachment", nil))
}
