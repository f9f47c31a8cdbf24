package user

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
	app.Post("/api/v1/auth/signup", h.signup)
	app.Post("/api/v1/auth/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/auth/me", h.me)
	app.Put("/api/v1/auth/me", h.updateMe)
	app.Get("/api/v1/admin/users", RequireAdmin, h.listUsers)
	app.Get("/api/v1/admin/users/:id<[0-9]+>", RequireAdmin, h.getUser)
	app.Put("/api/v1/admin/users/:id<[0-9]+>", RequireAdmin, h.updateUser)
}

// RequireAdmin rejects requests whose token lacks the admin role. Used
// by every admin route group.
func RequireAdmin(c *fiber.Ctx) error {
	if !IsAdminFromCtx(c) {
		return api.Error(c, fiber.StatusForbidden, api.CodeForbidden, "admin only")
	}
	return c.Next()
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type adminUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (h *Handler) signup(c *fiber.Ctx) error {
	payload := new(signupRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		return api.Error(c, fiber.StatusBadRequest, api.CodeMissingFields, "email, password and name are required")
	}

	created, err := h.service.Register(payload.Email, payload.Password, payload.Name, payload.Phone)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return api.Error(c, fiber.StatusConflict, api.CodeBadRequest, "email already exists")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusCreated, created)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	u, token, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "invalid email or password")
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"user": u, "token": token})
}

func (h *Handler) me(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "user not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, u)
}

func (h *Handler) updateMe(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return api.Error(c, fiber.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	u, err := h.service.UpdateProfile(userID, payload.Name, payload.Phone, payload.Password)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "user not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, u)
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	detail, err := h.service.AdminDetail(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "user not found")
		}
		return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
	}
	return api.Success(c, fiber.StatusOK, detail)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, "invalid id")
	}

	payload := new(adminUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
	}

	updated, err := h.service.AdminUpdate(id, payload.Name, payload.Phone, payload.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return api.Error(c, fiber.StatusNotFound, api.CodeNotFound, "user not found")
		case errors.Is(err, ErrInvalidRole):
			return api.Error(c, fiber.StatusBadRequest, api.CodeBadRequest, err.Error())
		default:
			return api.Error(c, fiber.StatusInternalServerError, api.CodeInternalError, err.Error())
		}
	}
	return api.Success(c, fiber.StatusOK, updated)
}
