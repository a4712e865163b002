package controller

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExamController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	Current(ctx *fiber.Ctx) error
	Answer(ctx *fiber.Ctx) error
}

type examController struct {
	examService    service.IExamService
	authMiddleware fiber.Handler
}

func NewExamController(examService service.IExamService, authMiddleware fiber.Handler) IExamController {
	return &examController{examService: examService, authMiddleware: authMiddleware}
}

func (c *examController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/exam/v1")
	h.Use(c.authMiddleware)
	h.Post("/generate", c.Generate)
	h.Get("/:id", c.Show)
	h.Post("/:id/start", c.Start)
	h.Get("/:id/attempt", c.Current)
	h.Post("/:id/answer", c.Answer)
}

func (c *examController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateExamRequest
	if len(ctx.Body()) > 0 {
		if err := serverutils.ParseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.examService.Generate(ctx.UserContext(), userId, req.Topic)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate exam", res))
}

func (c *examController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.examService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show exam", res))
}

func (c *examController) Start(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.examService.Start(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Exam started", res))
}

func (c *examController) Current(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.examService.Current(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get current question", res))
}

func (c *examController) Answer(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SubmitAnswerRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.examService.Answer(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}
