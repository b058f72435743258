package controller

import (
	"shop-assistant-be/internal/pkg/serverutils"
	"shop-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListInteractions(ctx *fiber.Ctx) error
	RecentContexts(ctx *fiber.Ctx) error
	ClearContexts(ctx *fiber.Ctx) error
	RefreshAliases(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("interactions", c.ListInteractions)
	h.Get("sessions/:sessionId/contexts", c.RecentContexts)
	h.Delete("sessions/:sessionId/contexts", c.ClearContexts)
	h.Post("aliases/refresh", c.RefreshAliases)
	h.Get("logs", c.GetLogs)
}

func (c *adminController) ListInteractions(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListInteractions(
		ctx.Context(),
		ctx.Query("session_id"),
		ctx.QueryInt("limit", 50),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interaction list", res))
}

func (c *adminController) RecentContexts(ctx *fiber.Ctx) error {
	contextType := ctx.Query("type", "search_results")
	res, err := c.adminService.RecentContexts(
		ctx.Context(),
		ctx.Params("sessionId"),
		contextType,
		ctx.QueryInt("limit", 5),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent contexts", res))
}

func (c *adminController) ClearContexts(ctx *fiber.Ctx) error {
	contextType := ctx.Query("type", "search_results")
	if err := c.adminService.ClearContexts(ctx.Context(), ctx.Params("sessionId"), contextType); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Contexts cleared", nil))
}

func (c *adminController) RefreshAliases(ctx *fiber.Ctx) error {
	res, err := c.adminService.RefreshAliases(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Alias dictionary refreshed", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetLogs(
		ctx.Query("level"),
		ctx.QueryInt("limit", 100),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", res))
}
