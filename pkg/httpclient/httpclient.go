// Package httpclient is a small JSON client over fasthttp.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/valyala/fasthttp"
)

type Config struct {
	// Timeout bounds every request. A context deadline, when earlier, wins.
	Timeout time.Duration
}

type Client struct {
	baseURL *url.URL
	config  Config
}

func New(baseURL string, config Config) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse base url")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}
	return &Client{baseURL: parsed, config: config}, nil
}

// BaseURL returns a copy of the client's base URL.
func (h *Client) BaseURL() *url.URL {
	u := *h.baseURL
	return &u
}

// Response is detached from fasthttp's pooled response.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Decode unmarshals a JSON body into out.
func (r *Response) Decode(out any) error {
	mediaType, _, _ := mime.ParseMediaType(r.ContentType)
	if mediaType != "application/json" {
		return errors.Errorf("%s answered %q, not json: %q", r.URL, r.ContentType, r.Body)
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return errors.Wrapf(err, "can't decode body from %s", r.URL)
	}
	return nil
}

// PostJSON sends payload as a JSON body to path under the base URL.
func (h *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal payload")
	}
	return h.send(ctx, fasthttp.MethodPost, path, body)
}

func (h *Client) send(ctx context.Context, method, p string, body []byte) (*Response, error) {
	target := h.BaseURL()
	target.Path = path.Join(target.Path, p)
	uri := target.String()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	start := time.Now()
	if err := h.do(ctx, req, resp); err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, uri)
	}
	logger.DebugContext(ctx, "http request done",
		slog.String("package", "httpclient"),
		slog.String("method", method),
		slog.String("url", uri),
		slog.Int("status_code", resp.StatusCode()),
		slog.Duration("latency", time.Since(start)),
	)

	return &Response{
		URL:         uri,
		StatusCode:  resp.StatusCode(),
		ContentType: string(resp.Header.ContentType()),
		Body:        bytes.Clone(resp.Body()),
	}, nil
}

func (h *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	deadline, ok := ctx.Deadline()
	if h.config.Timeout > 0 {
		if byTimeout := time.Now().Add(h.config.Timeout); !ok || byTimeout.Before(deadline) {
			deadline, ok = byTimeout, true
		}
	}
	if !ok {
		return errors.WithStack(fasthttp.Do(req, resp))
	}
	return errors.WithStack(fasthttp.DoDeadline(req, resp, deadline))
}
