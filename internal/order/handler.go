package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
	"github.com/dalkomstore/shop-backend/internal/user"
)

// Handler maps the placement engine and lifecycle operations onto the
// HTTP surface.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.placeOrder)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/pay", h.payOrder)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/orders", requireAdmin, h.adminList)
	app.Get("/api/v1/admin/orders/:id<[0-9]+>", requireAdmin, h.adminGet)
	app.Put("/api/v1/admin/orders/:id<[0-9]+>", requireAdmin, h.adminUpdate)
}

type adminUpdateRequest struct {
	Status     string `json:"status"`
	Carrier    string `json:"carrier"`
	TrackingNo string `json:"trackingNo"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	info := new(ShippingInfo)
	if err := c.BodyParser(info); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	ord, err := h.service.PlaceOrder(userID, *info)
	if err != nil {
		return placementError(c, err)
	}
	return api.Success(c, fiber.StatusCreated, fiber.Map{"orderId": ord.ID, "orderNo": ord.OrderNo})
}

// placementError maps the placement error taxonomy onto HTTP statuses
// with enough detail for the storefront to render a specific message.
func placementError(c *fiber.Ctx, err error) error {
	var validation *ValidationError
	var stock *InsufficientStockError
	switch {
	case errors.As(err, &validation):
		return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, validation.Error())
	case errors.Is(err, ErrEmptyCart):
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "cart is empty")
	case errors.As(err, &stock):
		return api.Error(c, fiber.StatusConflict, api.CodeInsufficientStock, stock.Error())
	default:
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, "order could not be processed")
	}
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	orders, err := h.service.ListForUser(userID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid order id")
	}

	ord, err := h.service.GetForUser(userID, orderID)
	if err != nil {
		return lookupError(c, err)
	}
	return api.Success(c, fiber.StatusOK, ord)
}

func (h *Handler) payOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid order id")
	}

	ord, err := h.service.Pay(userID, orderID)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return api.Error(c, fiber.StatusConflict, api.CodeBadRequest, "order is not awaiting payment")
		}
		return lookupError(c, err)
	}
	return api.Success(c, fiber.StatusOK, ord)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	status := c.Query("status")

	// meta must report the values the query actually ran with
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	orders, total, err := h.service.AdminList(status, page, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "unknown status filter")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}

	totalPages := (total + limit - 1) / limit
	return api.SuccessMeta(c, fiber.StatusOK, orders, api.Meta{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages,
	})
}

func (h *Handler) adminGet(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid order id")
	}

	ord, err := h.service.AdminGet(orderID)
	if err != nil {
		return lookupError(c, err)
	}
	return api.Success(c, fiber.StatusOK, ord)
}

func (h *Handler) adminUpdate(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid order id")
	}

	payload := new(adminUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	ord, err := h.service.AdminUpdate(orderID, payload.Status, payload.Carrier, payload.TrackingNo)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return api.Error(c, fiber.StatusConflict, api.CodeBadRequest, "illegal status transition")
		}
		return lookupError(c, err)
	}
	return api.Success(c, fiber.StatusOK, ord)
}

func lookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "order not found")
	case errors.Is(err, ErrNotOwner):
		return api.Error(c, fiber.StatusForbidden, api.CodeForbidden, "order belongs to another user")
	default:
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
}
