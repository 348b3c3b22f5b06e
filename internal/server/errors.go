package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errorHandler renders errors that escape a handler, including recovered
// panics, in the same JSON error shape the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return newError(c, fe.Code, "bad_request", fe.Message)
	}
	return errInternal(c, err.Error())
}

// mapPipelineError translates typed conversion errors into HTTP responses.
//
// Request-shaped problems (bad zoom, unknown layer) map to 400; archives that
// were received fine but cannot be converted map to 422; everything else is a
// 500.
func mapPipelineError(c *fiber.Ctx, err error) error {
	var zoomErr *kmz.ErrInvalidZoom
	if errors.As(err, &zoomErr) {
		return newError(c, fiber.StatusBadRequest, "invalid_zoom", err.Error())
	}

	var layerErr *kmz.ErrUnknownLayer
	if errors.As(err, &layerErr) {
		return newError(c, fiber.StatusBadRequest, "unknown_layer", err.Error())
	}

	var noKML *kmz.ErrNoMapDescription
	if errors.As(err, &noKML) {
		return newError(c, fiber.StatusUnprocessableEntity, "no_map_description", err.Error())
	}

	var noData *kmz.ErrNoData
	if errors.As(err, &noData) {
		return newError(c, fiber.StatusUnprocessableEntity, "no_data", err.Error())
	}

	var malformed *kmz.ErrMalformedCoordinate
	if errors.As(err, &malformed) {
		return newError(c, fiber.StatusUnprocessableEntity, "malformed_coordinate", err.Error())
	}

	var invalid *kmz.ErrInvalidCoordinate
	if errors.As(err, &invalid) {
		return newError(c, fiber.StatusUnprocessableEntity, "invalid_coordinate", err.Error())
	}

	var degenerate *kmz.ErrDegenerateViewport
	if errors.As(err, &degenerate) {
		return newError(c, fiber.StatusUnprocessableEntity, "degenerate_viewport", err.Error())
	}

	// Container and XML decode failures surface as plain wrapped errors.
	return newError(c, fiber.StatusUnprocessableEntity, "invalid_archive", err.Error())
}
