package requestcontext

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientIPApp(t *testing.T, config WithClientIPConfig) *fiber.App {
	t.Helper()
	withClientIP, err := WithClientIP(config)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(New(WithRequestID(), withClientIP))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetClientIP(c.UserContext()))
	})
	return app
}

func do(t *testing.T, app *fiber.App, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestWithClientIP(t *testing.T) {
	proxies := []string{"10.0.0.0/8"}
	testCases := []struct {
		name     string
		config   WithClientIPConfig
		headers  map[string]string
		expected string
	}{
		{
			name:     "direct",
			expected: "0.0.0.0",
		},
		{
			name:     "trusted header",
			config:   WithClientIPConfig{TrustedHeader: "X-Real-IP", TrustedProxiesIP: proxies},
			headers:  map[string]string{"X-Real-IP": "1.2.3.4", "X-Forwarded-For": "5.6.7.8"},
			expected: "1.2.3.4",
		},
		{
			name:     "invalid trusted header falls back",
			config:   WithClientIPConfig{TrustedHeader: "X-Real-IP", TrustedProxiesIP: proxies},
			headers:  map[string]string{"X-Real-IP": "unknown", "X-Forwarded-For": "5.6.7.8, 10.0.0.1"},
			expected: "5.6.7.8",
		},
		{
			name:     "spoofed entry before the real client",
			config:   WithClientIPConfig{TrustedProxiesIP: proxies},
			headers:  map[string]string{"X-Forwarded-For": "9.9.9.9, 1.1.1.1, 10.0.0.2, 10.0.0.1"},
			expected: "1.1.1.1",
		},
		{
			name:     "all proxies trusted",
			config:   WithClientIPConfig{TrustedProxiesIP: proxies},
			headers:  map[string]string{"X-Forwarded-For": "10.0.0.2, 10.0.0.1"},
			expected: "10.0.0.2",
		},
		{
			name:     "no trusted proxies",
			headers:  map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.1"},
			expected: "1.1.1.1",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, newClientIPApp(t, tc.config), tc.headers)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tc.expected, body)
		})
	}
}

func TestWithClientIPRejectMalformed(t *testing.T) {
	app := newClientIPApp(t, WithClientIPConfig{RejectMalformedRequest: true})

	status, body := do(t, app, map[string]string{"X-Forwarded-For": "1.1.1.1"})
	assert.Equal(t, http.StatusForbidden, status)

	var resp common.HttpResponse[any]
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not allowed to access", *resp.Error)

	status, _ = do(t, app, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestWithClientIPInvalidCIDR(t *testing.T) {
	_, err := WithClientIP(WithClientIPConfig{TrustedProxiesIP: []string{"10.0.0.0/33"}})
	assert.Error(t, err)
}

func TestWithRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(New(WithRequestID()))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "sale-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "sale-42", string(body))
	assert.Equal(t, "sale-42", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.NotEmpty(t, body)
	assert.Equal(t, string(body), resp.Header.Get(fiber.HeaderXRequestID))
}

func TestOptionFailure(t *testing.T) {
	failing := func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		return nil, errors.New("broken option")
	}
	app := fiber.New()
	app.Use(New(failing))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	status, body := do(t, app, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "internal server error")
}

func TestGettersWithoutMiddleware(t *testing.T) {
	assert.Empty(t, GetClientIP(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}
