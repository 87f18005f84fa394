package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/tokensale/internal/config"
	"github.com/gaze-network/tokensale/pkg/middleware/requestcontext"
	"github.com/gaze-network/tokensale/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInjector(conf config.Config) do.Injector {
	injector := do.New()
	do.ProvideValue(injector, conf)
	do.Provide(injector, newReportingClient)
	do.Provide(injector, newHTTPServer)
	return injector
}

func TestNewHTTPServer(t *testing.T) {
	app := do.MustInvoke[*fiber.App](newTestInjector(config.Config{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "health")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "health", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/tokensale/v1/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewHTTPServerInvalidProxies(t *testing.T) {
	conf := config.Config{}
	conf.HTTPServer.RequestIP = requestcontext.WithClientIPConfig{TrustedProxiesIP: []string{"not-a-cidr"}}

	_, err := do.Invoke[*fiber.App](newTestInjector(conf))
	assert.Error(t, err)
}

func TestNewReportingClient(t *testing.T) {
	conf := config.Config{Reporting: reportingclient.Config{Disabled: true}}
	client, err := do.Invoke[*reportingclient.ReportingClient](newTestInjector(conf))
	require.NoError(t, err)
	assert.Nil(t, client)

	conf.Reporting = reportingclient.Config{BaseURL: "http://localhost:9000"}
	_, err = do.Invoke[*reportingclient.ReportingClient](newTestInjector(conf))
	assert.Error(t, err)

	conf.Reporting.Name = "node-1"
	client, err = do.Invoke[*reportingclient.ReportingClient](newTestInjector(conf))
	require.NoError(t, err)
	assert.NotNil(t, client)
}
