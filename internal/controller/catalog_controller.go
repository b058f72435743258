package controller

import (
	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/serverutils"
	"shop-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Post("search", c.Search)
}

func (c *catalogController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search completed", res))
}
