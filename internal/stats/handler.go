package stats

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/stats", requireAdmin, h.dashboard)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	d, err := h.repo.Dashboard()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, d)
}
