package inquiry

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

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/inquiries", h.create)
	app.Get("/api/v1/inquiries", h.listMine)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/inquiries", requireAdmin, h.adminList)
	app.Put("/api/v1/admin/inquiries/:id<[0-9]+>/answer", requireAdmin, h.answer)
}

type createRequest struct {
	ProductID int    `json:"productId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type answerRequest struct {
	Answer string `json:"answer"`
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

	created, err := h.service.Create(userID, payload.ProductID, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusCreated, created)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	inquiries, err := h.service.ListForUser(userID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, inquiries)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	status := c.Query("status")
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	inquiries, total, err := h.service.AdminList(status, page, limit)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.SuccessMeta(c, fiber.StatusOK, inquiries, api.Meta{Page: page, Limit: limit, Total: total})
}

func (h *Handler) answer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	payload := new(answerRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	answered, err := h.service.AdminAnswer(id, payload.Answer)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "inquiry not found")
		case errors.Is(err, ErrMissingAnswer):
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusOK, answered)
}
