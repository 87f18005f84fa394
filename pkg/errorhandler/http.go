package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// Response is the error body of every failed API request.
type Response struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statuses maps error kinds to response statuses. Kinds not listed are 400 when public and 500 otherwise.
var statuses = map[errs.ErrorKind]int{
	errs.NotFound:        http.StatusNotFound,
	errs.InvalidArgument: http.StatusBadRequest,
	errs.Unsupported:     http.StatusNotImplemented,
	errs.Timeout:         http.StatusGatewayTimeout,
	errs.Closed:          http.StatusServiceUnavailable,
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if kind, ok := errs.Kind(err); ok {
		if status, ok := statuses[kind]; ok {
			return status
		}
	}
	if e := new(errs.PublicError); errors.As(err, &e) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(StatusOf(err)).JSON(Response{
				Error: e.Message(),
				Code:  e.Code(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).JSON(Response{
				Error: e.Message,
			}))
		}

		status := StatusOf(err)
		if status != http.StatusInternalServerError {
			kind, _ := errs.Kind(err)
			return errors.WithStack(ctx.Status(status).JSON(Response{
				Error: kind.Error(),
				Code:  errs.Code(err),
			}))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(Response{
			Error: "Internal Server Error",
		}))
	}
}
