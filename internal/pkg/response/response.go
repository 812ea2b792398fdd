package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API response. Error, when set, is a
// machine-readable reason code (snake_case), never an internal detail.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Error sends an error response with a reason code
func Error(c *fiber.Ctx, statusCode int, code string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   code,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusBadRequest, code)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusUnauthorized, code)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusForbidden, code)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusNotFound, code)
}

// ServiceUnavailable sends a 503 service unavailable response
func ServiceUnavailable(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusServiceUnavailable, code)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code)
}
