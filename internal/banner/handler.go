package banner

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
	app.Get("/api/v1/banners", h.listActive)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/banners", requireAdmin, h.listAll)
	app.Post("/api/v1/admin/banners", requireAdmin, h.create)
	app.Put("/api/v1/admin/banners/reorder", requireAdmin, h.reorder)
	app.Put("/api/v1/admin/banners/:id<[0-9]+>", requireAdmin, h.update)
	app.Delete("/api/v1/admin/banners/:id<[0-9]+>", requireAdmin, h.delete)
}

type bannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
	IsActive *bool  `json:"isActive"`
}

type reorderRequest struct {
	Banners []struct {
		ID    int `json:"bannerId"`
		Order int `json:"order"`
	} `json:"banners"`
}

func (h *Handler) listActive(c *fiber.Ctx) error {
	banners, err := h.service.ListActive()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, banners)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	banners, err := h.service.ListAll()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, banners)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(bannerRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	created, err := h.service.Create(Banner{
		Title:    payload.Title,
		ImageURL: payload.ImageURL,
		Link:     payload.Link,
		IsActive: active,
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

	payload := new(bannerRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	updated, err := h.service.Update(id, Banner{
		Title:    payload.Title,
		ImageURL: payload.ImageURL,
		Link:     payload.Link,
		IsActive: active,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "banner not found")
		case errors.Is(err, ErrMissingFields):
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

	order := make(map[int]int, len(payload.Banners))
	for _, b := range payload.Banners {
		order[b.ID] = b.Order
	}
	if err := h.service.Reorder(order); err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"reordered": len(order)})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "banner not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
