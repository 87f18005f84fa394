package requestlogger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/pkg/errorhandler"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, config Config) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, logger.Init(logger.Config{Output: "json", Writer: &buf}))
	t.Cleanup(func() { _ = logger.Init(logger.Config{}) })

	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	app.Use(New(config))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/timelocks/:address", func(c *fiber.Ctx) error {
		if c.Params("address") == "0x71" {
			return c.JSON(map[string]string{"address": "0x71"})
		}
		return errs.NotFound
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errs.InternalError
	})
	return app, &buf
}

// logLines returns the request log lines, skipping lines of other components.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		if line["event"] == "api_request" {
			lines = append(lines, line)
		}
	}
	return lines
}

func get(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequestLogger(t *testing.T) {
	app, buf := newTestApp(t, Config{})

	assert.Equal(t, http.StatusOK, get(t, app, "/timelocks/0x71"))
	assert.Equal(t, http.StatusNotFound, get(t, app, "/timelocks/0x72"))
	assert.Equal(t, http.StatusInternalServerError, get(t, app, "/boom"))

	lines := logLines(t, buf)
	require.Len(t, lines, 3)

	levels := []string{"INFO", "WARN", "ERROR"}
	statuses := []float64{200, 404, 500}
	for i, line := range lines {
		assert.Equal(t, levels[i], line["level"])
		assert.Equal(t, "api_request", line["event"])
		response := line["response"].(map[string]any)
		assert.Equal(t, statuses[i], response["status"])
	}
	request := lines[1]["request"].(map[string]any)
	assert.Equal(t, "/timelocks/:address", request["route"])
	assert.Equal(t, "/timelocks/0x72", request["path"])
	assert.Contains(t, lines[1], "error")
	assert.NotContains(t, lines[0], "error")
}

func TestRequestLoggerDisableAndSkip(t *testing.T) {
	app, buf := newTestApp(t, Config{Disable: true, SkipPaths: []string{"/"}})

	assert.Equal(t, http.StatusOK, get(t, app, "/"))
	assert.Equal(t, http.StatusOK, get(t, app, "/timelocks/0x71"))
	assert.Equal(t, http.StatusNotFound, get(t, app, "/timelocks/0x72"))

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
}

func TestRequestLoggerHiddenHeaders(t *testing.T) {
	app, buf := newTestApp(t, Config{WithRequestHeader: true, HiddenRequestHeaders: []string{" Authorization "}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Client", "wallet")
	_, err := app.Test(req)
	require.NoError(t, err)

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	header := lines[0]["request"].(map[string]any)["header"].(map[string]any)
	assert.Contains(t, header, "X-Client")
	assert.NotContains(t, header, "Authorization")
}
