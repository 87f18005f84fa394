package cmd

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/internal/config"
	"github.com/gaze-network/tokensale/pkg/errorhandler"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gaze-network/tokensale/pkg/middleware/requestcontext"
	"github.com/gaze-network/tokensale/pkg/middleware/requestlogger"
	"github.com/gaze-network/tokensale/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
)

// newHTTPServer builds the API server with the middleware chain and the health check.
// Modules mount their routes on it.
func newHTTPServer(i do.Injector) (*fiber.App, error) {
	conf := do.MustInvoke[config.Config](i)

	withClientIP, err := requestcontext.WithClientIP(conf.HTTPServer.RequestIP)
	if err != nil {
		return nil, errors.Wrap(err, "invalid http_server.requestip configuration")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Token Sale",
		DisableStartupMessage: true,
		ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
	})
	app.
		Use(favicon.New()).
		Use(cors.New()).
		Use(requestid.New()).
		Use(requestcontext.New(
			requestcontext.WithRequestID(),
			withClientIP,
		)).
		Use(requestlogger.New(conf.HTTPServer.Logger)).
		Use(fiberrecover.New(fiberrecover.Config{
			EnableStackTrace: true,
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				buf := make([]byte, 4096)
				buf = buf[:runtime.Stack(buf, false)]
				logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
			},
		})).
		Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})

	return app, nil
}

// newReportingClient returns nil when reporting is disabled.
func newReportingClient(i do.Injector) (*reportingclient.ReportingClient, error) {
	conf := do.MustInvoke[config.Config](i)
	if conf.Reporting.Disabled {
		return nil, nil
	}

	reportingClient, err := reportingclient.New(conf.Reporting)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return nil, errors.Wrap(err, "invalid reporting configuration")
		}
		return nil, errors.Wrap(err, "can't create reporting client")
	}
	return reportingClient, nil
}
