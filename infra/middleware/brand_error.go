package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"brand_server/pkg/apperr"
	"brand_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDLocal is the fiber.Ctx Locals key holding the request ID.
const RequestIDLocal = "request_id"

// ErrorResponse is the error body every endpoint returns.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// GetRequestID returns the request ID set by RequestID.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocal).(string)
	return id
}

// NewErrorResponse builds the error body for err and returns it with its status.
func NewErrorResponse(c *fiber.Ctx, err error) (int, ErrorResponse) {
	requestID := GetRequestID(c)
	response := ErrorResponse{RequestID: requestID}

	var status int
	var fiberErr *fiber.Error
	switch {
	case apperr.IsAppError(err):
		e := apperr.AsAppError(err)
		status = e.Status
		response.Error = e.Message
		response.Code = e.Code
		if status != fiber.StatusInternalServerError {
			response.Details = e.Cause()
		}

		log := logger.WithContext(c.UserContext()).
			WithField("error_code", e.Code).
			WithError(e.Err)
		if status >= 500 {
			log.Error("Request failed: %s", e.Message)
		} else {
			log.Warn("Client error: %s", e.Message)
		}

	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		response.Error = fiberErr.Message
		response.Code = mapHTTPStatusToCode(fiberErr.Code)

	default:
		status = fiber.StatusInternalServerError
		response.Error = "An unexpected error occurred"
		response.Code = apperr.CodeInternalError

		logger.WithContext(c.UserContext()).
			WithError(err).
			WithField("stack", string(debug.Stack())).
			Error("Unexpected error: %s", err.Error())
	}
	return status, response
}

// ErrorHandler is a centralized error handler for Fiber
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, response := NewErrorResponse(c, err)
		return c.Status(status).JSON(response)
	}
}

// NotFound answers every request no route matched. Register it last.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return apperr.NotFound("route " + c.Method() + " " + c.Path())
	}
}

// RequestID middleware adds a unique request ID to each request and to the
// request's user context for log correlation.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals(RequestIDLocal, requestID)
		c.Set("X-Request-ID", requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), logger.RequestIDKey, requestID))
		return c.Next()
	}
}

// RequestLogger logs incoming requests and their responses
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the logged status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		status := c.Response().StatusCode()
		log := logger.WithFields(map[string]any{
			"request_id":  GetRequestID(c),
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"ip":          c.IP(),
		})

		switch {
		case status >= 500:
			log.Error("Request failed: %s %s -> %d", c.Method(), c.Path(), status)
		case status >= 400:
			log.Warn("Request error: %s %s -> %d", c.Method(), c.Path(), status)
		default:
			log.Info("Request completed: %s %s -> %d", c.Method(), c.Path(), status)
		}

		return err
	}
}

// Recover middleware recovers from panics
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(map[string]any{
					"request_id": GetRequestID(c),
					"panic":      fmt.Sprintf("%v", r),
					"path":       c.Path(),
					"method":     c.Method(),
					"stack":      string(debug.Stack()),
				}).Error("Panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
					Error:     "An unexpected error occurred",
					Code:      apperr.CodeInternalError,
					RequestID: GetRequestID(c),
				})
			}
		}()
		return c.Next()
	}
}

func mapHTTPStatusToCode(status int) string {
	switch status {
	case 400:
		return apperr.CodeBadRequest
	case 404:
		return apperr.CodeNotFound
	case 405:
		return "METHOD_NOT_ALLOWED"
	case 408:
		return apperr.CodeTimeout
	case 413:
		return "PAYLOAD_TOO_LARGE"
	case 429:
		return apperr.CodeRateLimited
	case 500:
		return apperr.CodeInternalError
	case 502, 503, 504:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UNKNOWN_ERROR"
	}
}
