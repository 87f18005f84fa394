package requestlogger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type Config struct {
	// Disable drops successful requests. Client and server errors are still logged.
	Disable           bool `mapstructure:"disable"`
	WithRequestHeader bool `mapstructure:"request_header"`
	// HiddenRequestHeaders are never logged, matched case-insensitively.
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`
	// SkipPaths are never logged, e.g. the health check.
	SkipPaths []string `mapstructure:"skip_paths"`
}

// New logs one line per request. A handler error is resolved through the app's
// error handler first, so the logged status is the one the client receives.
func New(config Config) fiber.Handler {
	hidden := lo.Associate(config.HiddenRequestHeaders, func(h string) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(h)), struct{}{}
	})
	skip := lo.Associate(config.SkipPaths, func(p string) (string, struct{}) {
		return p, struct{}{}
	})

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(http.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		if config.Disable && level == slog.LevelInfo {
			return nil
		}

		request := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slog.Any("params", c.AllParams()),
			slog.String("query", string(c.Request().URI().QueryString())),
			slog.Int("length", len(c.Body())),
		}
		if config.WithRequestHeader {
			headers := make([]any, 0)
			for k, v := range c.GetReqHeaders() {
				if _, ok := hidden[strings.ToLower(k)]; !ok {
					headers = append(headers, slog.Any(k, v))
				}
			}
			request = append(request, slog.Group("header", headers...))
		}

		attrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Duration("latency", latency),
			slog.Attr{Key: "request", Value: slog.GroupValue(request...)},
			slog.Attr{Key: "response", Value: slog.GroupValue(
				slog.Int("status", status),
				slog.Int("length", len(c.Response().Body())),
			)},
		}
		if chainErr != nil {
			attrs = append(attrs, slog.Any("error", chainErr))
		}
		logger.LogAttrs(c.UserContext(), level, "Request Completed", attrs...)
		return nil
	}
}
