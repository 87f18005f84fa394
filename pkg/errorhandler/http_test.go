package errorhandler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		body   Response
	}{
		{
			name:   "public validation error",
			err:    errs.WithPublicMessage(errors.New("'limit' must be non-negative"), "validation error"),
			status: http.StatusBadRequest,
			body:   Response{Error: "validation error: 'limit' must be non-negative", Code: "unknown"},
		},
		{
			name:   "public invalid argument",
			err:    errs.WithPublicMessage(errors.Wrap(errs.InvalidArgument, "bad address"), ""),
			status: http.StatusBadRequest,
			body:   Response{Error: "bad address: Invalid Argument", Code: "invalid_argument"},
		},
		{
			name:   "not found",
			err:    errors.Wrap(errs.NotFound, "no block"),
			status: http.StatusNotFound,
			body:   Response{Error: "Not Found", Code: "not_found"},
		},
		{
			name:   "fiber error",
			err:    fiber.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			body:   Response{Error: "Method Not Allowed"},
		},
		{
			name:   "internal",
			err:    errors.New("connection refused"),
			status: http.StatusInternalServerError,
			body:   Response{Error: "Internal Server Error"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
			app.Get("/", func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body Response
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.body, body)
		})
	}
}
