package requestcontext

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// Option derives a value from the request into ctx. Options run in order.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

// New runs opts and stores the resulting context as the fiber user context.
// A rejection from an option ends the request with its status and message.
func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for i, opt := range opts {
			next, err := opt(ctx, c)
			if err != nil {
				var rejected *rejection
				if errors.As(err, &rejected) {
					return respondError(c, rejected.status, rejected.message)
				}
				logger.ErrorContext(ctx, "Failed to extract request context",
					slogx.Error(err),
					slogx.Int("option_index", i),
				)
				return respondError(c, http.StatusInternalServerError, "internal server error")
			}
			ctx = next
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return errors.WithStack(c.Status(status).JSON(common.HttpResponse[any]{Error: &message}))
}

// rejection ends a request before it reaches a handler.
type rejection struct {
	status  int
	message string
}

func (r *rejection) Error() string {
	return r.message
}
