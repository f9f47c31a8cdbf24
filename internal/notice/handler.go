package notice

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
	app.Get("/api/v1/notices", h.list)
	app.Get("/api/v1/notices/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Post("/api/v1/admin/notices", requireAdmin, h.create)
	app.Put("/api/v1/admin/notices/:id<[0-9]+>", requireAdmin, h.update)
	app.Delete("/api/v1/admin/notices/:id<[0-9]+>", requireAdmin, h.delete)
}

type noticeRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsImportant bool   `json:"isImportant"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	notices, err := h.service.List()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, notices)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	n, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "notice not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, n)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(noticeRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	created, err := h.service.Create(Notice{
		Title:       payload.Title,
		Content:     payload.Content,
		IsImportant: payload.IsImportant,
	})
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
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

	payload := new(noticeRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	updated, err := h.service.Update(id, Notice{
		Title:       payload.Title,
		Content:     payload.Content,
		IsImportant: payload.IsImportant,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "notice not found")
		case errors.Is(err, ErrMissingFields):
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusOK, updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "notice not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
