package api

import "github.com/gofiber/fiber/v2"

// Error codes shared by every handler package so clients can branch on
// something more stable than a message string.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeMissingFields     = "MISSING_FIELDS"
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Meta carries pagination info for list endpoints.
type Meta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"totalPages,omitempty"`
}

// Success writes {"success":true,"data":...} with the given status.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

// SuccessMeta is Success plus a pagination meta block.
func SuccessMeta(c *fiber.Ctx, status int, data interface{}, meta Meta) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data, "meta": meta})
}

// Error writes {"success":false,"error":{"message":...,"code":...}}.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"message": message, "code": code},
	})
}
