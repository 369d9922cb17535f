package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"spotapi/internal/http/middleware"
	"spotapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response.
// message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service errors onto status codes and stable error codes.
// fallbackCode is used for errors the service did not classify.
func writeServiceError(c *fiber.Ctx, err error, fallbackCode string) error {
	var uploadErr *service.UploadError

	switch {
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", err.Error())
	case errors.Is(err, service.ErrDescriptionRequired):
		return writeError(c, fiber.StatusBadRequest, "DESCRIPTION_REQUIRED", err.Error())
	case errors.Is(err, service.ErrImageRequired):
		return writeError(c, fiber.StatusBadRequest, "IMAGE_REQUIRED", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "spot not found")
	case errors.Is(err, service.ErrNoImage):
		return writeError(c, fiber.StatusNotFound, "IMAGE_NOT_FOUND", "spot has no image")
	case errors.Is(err, service.ErrFetchFailed):
		return writeError(c, fiber.StatusServiceUnavailable, "FETCH_FAILED", "fetching spots failed")
	case errors.As(err, &uploadErr):
		return writeError(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", uploadErr.Error())
	case fallbackCode == "DELETE_FAILED":
		return writeError(c, fiber.StatusInternalServerError, fallbackCode, "delete failed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
