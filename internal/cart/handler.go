package cart

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
	"github.com/dalkomstore/shop-backend/internal/catalog"
	"github.com/dalkomstore/shop-backend/internal/user"
)

// Handler delegates cart operations to the cart service. This keeps
// cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/:itemID<[0-9]+>", h.updateItem)
	app.Delete("/api/v1/cart/:itemID<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	items, err := h.service.GetCart(userID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"items": items})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}
	if payload.ProductID <= 0 || payload.Quantity == 0 {
		return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, "productId and quantity are required")
	}

	items, err := h.service.AddToCart(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "product not found")
		case errors.Is(err, ErrInvalidQuantity):
			return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusCreated, fiber.Map{"items": items})
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	itemID, err := strconv.Atoi(c.Params("itemID"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid item id")
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	items, err := h.service.UpdateQuantity(userID, itemID, payload.Quantity)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "cart item not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"items": items})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	itemID, err := strconv.Atoi(c.Params("itemID"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid item id")
	}

	if err := h.service.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "cart item not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	if err := h.service.ClearCart(userID); err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
