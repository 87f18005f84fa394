package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/report/block", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"height":7}`, string(body))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"count":2}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL+"/api", Config{})
	require.NoError(t, err)

	resp, err := client.PostJSON(context.Background(), "/v1/report/block", map[string]int{"height": 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, srv.URL+"/api/v1/report/block", resp.URL)

	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, 2, out.Count)
}

func TestDecodeRejectsNonJSON(t *testing.T) {
	resp := &Response{URL: "http://localhost/x", ContentType: "text/plain", Body: []byte("oops")}
	var out map[string]any
	assert.Error(t, resp.Decode(&out))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client, err := New(srv.URL, Config{Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.PostJSON(context.Background(), "/slow", struct{}{})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New("localhost:8080", Config{})
	assert.Error(t, err)

	client, err := New("http://localhost:8080/api", Config{})
	require.NoError(t, err)

	u := client.BaseURL()
	u.Path = "/changed"
	assert.Equal(t, "/api", client.BaseURL().Path)
}
