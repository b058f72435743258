package controller

import (
	"errors"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/serverutils"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	AddItem(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type cartController struct {
	cartService service.ICartService
}

func NewCartController(cartService service.ICartService) ICartController {
	return &cartController{
		cartService: cartService,
	}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart/v1")
	h.Post("items", c.AddItem)
	h.Get(":sessionId", c.Show)
}

func (c *cartController) AddItem(ctx *fiber.Ctx) error {
	var req dto.AddCartItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.cartService.AddItem(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, contract.ErrPriceNotFound) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Item has no registered price for this branch"))
		}
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Item added", res))
}

func (c *cartController) Show(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing session id")
	}

	res, err := c.cartService.GetCart(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Cart", res))
}
