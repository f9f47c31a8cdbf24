package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dalkomstore/shop-backend/internal/api"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/v1/admin/products", requireAdmin, h.adminList)
	app.Post("/api/v1/admin/products", requireAdmin, h.adminCreate)
	app.Put("/api/v1/admin/products/:id<[0-9]+>", requireAdmin, h.adminUpdate)
	app.Delete("/api/v1/admin/products/:id<[0-9]+>", requireAdmin, h.adminDelete)
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	Status      string `json:"status"`
	ImageURL    string `json:"imageUrl"`
	CategoryID  *int   `json:"categoryId"`
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	categoryID, _ := strconv.Atoi(c.Query("categoryId"))
	products, err := h.service.ListVisible(categoryID)
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	p, err := h.service.GetVisible(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "product not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, p)
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	products, err := h.service.ListAll()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, products)
}

func (h *Handler) adminCreate(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}
	if payload.Name == "" || payload.Price < 0 || payload.Stock < 0 {
		return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, "name is required and price/stock must be non-negative")
	}

	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Status:      payload.Status,
		ImageURL:    payload.ImageURL,
		CategoryID:  payload.CategoryID,
	})
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusCreated, created)
}

func (h *Handler) adminUpdate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}
	if payload.Price < 0 || payload.Stock < 0 {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "price and stock must be non-negative")
	}

	updated, err := h.service.Update(id, Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Status:      payload.Status,
		ImageURL:    payload.ImageURL,
		CategoryID:  payload.CategoryID,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "product not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, updated)
}

func (h *Handler) adminDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "product not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
