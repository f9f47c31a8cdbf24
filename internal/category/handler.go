package category

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.list)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Post("/api/v1/admin/categories", requireAdmin, h.create)
	app.Put("/api/v1/admin/categories/reorder", requireAdmin, h.reorder)
	app.Put("/api/v1/admin/categories/:id<[0-9]+>", requireAdmin, h.update)
	app.Delete("/api/v1/admin/categories/:id<[0-9]+>", requireAdmin, h.delete)
}

type categoryRequest struct {
	Name string `json:"name"`
}

type reorderRequest struct {
	CategoryIDs []int `json:"categoryIds"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, categories)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	created, err := h.service.Create(payload.Name)
	if err != nil {
		if errors.Is(err, ErrMissingName) {
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusCreated, created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	updated, err := h.service.Update(id, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "category not found")
		case errors.Is(err, ErrMissingName):
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusOK, updated)
}

func (h *Handler) reorder(c *fiber.Ctx) error {
	payload := new(reorderRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	if err := h.service.Reorder(payload.CategoryIDs); err != nil {
		if errors.Is(err, ErrEmptyOrder) {
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"reordered": len(payload.CategoryIDs)})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "category not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
