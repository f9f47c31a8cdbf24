package address

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
	app.Get("/api/v1/user/addresses", h.list)
	app.Post("/api/v1/user/addresses", h.create)
	app.Put("/api/v1/user/addresses/:id<[0-9]+>", h.update)
	app.Delete("/api/v1/user/addresses/:id<[0-9]+>", h.delete)
}

type addressRequest struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	IsDefault bool   `json:"isDefault"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	addresses, err := h.service.List(userID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, addresses)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	created, err := h.service.Create(userID, Address{
		Recipient: payload.Recipient,
		Phone:     payload.Phone,
		Address:   payload.Address,
		IsDefault: payload.IsDefault,
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
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	updated, err := h.service.Update(userID, id, Address{
		Recipient: payload.Recipient,
		Phone:     payload.Phone,
		Address:   payload.Address,
		IsDefault: payload.IsDefault,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "address not found")
		case errors.Is(err, ErrMissingFields):
			return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusOK, updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "login required")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.Delete(userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "address not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
