package controller

import (
	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/serverutils"
	"shop-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService  service.IChatService
	adminService service.IAdminService
}

func NewChatController(chatService service.IChatService, adminService service.IAdminService) IChatController {
	return &chatController{
		chatService:  chatService,
		adminService: adminService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.SendMessage)
	h.Post("feedback", c.Feedback)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.HandleMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message handled", res))
}

func (c *chatController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.AttachFeedback(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback recorded", nil))
}
