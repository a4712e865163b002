package controller

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Welcome(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	service        service.IChatService
	authMiddleware fiber.Handler
}

func NewChatController(service service.IChatService, authMiddleware fiber.Handler) IChatController {
	return &chatController{service: service, authMiddleware: authMiddleware}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(c.authMiddleware)
	h.Get("/welcome/:type", c.Welcome)
	h.Post("/send", c.Send)
}

func (c *chatController) Welcome(ctx *fiber.Ctx) error {
	res, err := c.service.Welcome(ctx.UserContext(), ctx.Params("type"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get welcome message", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}
