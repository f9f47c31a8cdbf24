package review

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
	"github.com/dalkomstore/shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/:id<[0-9]+>/reviews", h.listByProduct)
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/reviews", h.create)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/reviews", requireAdmin, h.adminList)
	app.Delete("/api/v1/admin/reviews/:id<[0-9]+>", requireAdmin, h.adminDelete)
}

type createRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
}

func (h *Handler) listByProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid product id")
	}

	reviews, err := h.service.ListByProduct(productID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, reviews)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	created, err := h.service.Create(userID, payload.ProductID, payload.Rating, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadRating):
			return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
		case errors.Is(err, ErrNotPurchaser):
			return api.Error(c, fiber.StatusForbidden, api.CodeForbidden, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusCreated, created)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reviews, total, err := h.service.AdminList(page, limit)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.SuccessMeta(c, fiber.StatusOK, reviews, api.Meta{Page: page, Limit: limit, Total: total})
}

func (h *Handler) adminDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.AdminDelete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "review not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
