package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
)

type (
	handleFunc func(context.Context, slog.Record) error
	middleware func(handleFunc) handleFunc
)

// newHandler builds the output handler for format, wrapped with middlewares in order.
func newHandler(w io.Writer, format string, opts *slog.HandlerOptions, middlewares ...middleware) (slog.Handler, error) {
	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "gcp":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       opts.Level,
			ReplaceAttr: attrReplacerChain(GCPAttrReplacer, opts.ReplaceAttr),
		})
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "logger output %q", format)
	}
	if len(middlewares) == 0 {
		return h, nil
	}
	return &chainHandler{next: h, middlewares: middlewares}, nil
}

// chainHandler runs every record through middlewares before the wrapped handler sees it.
type chainHandler struct {
	next        slog.Handler
	middlewares []middleware
}

func (c *chainHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return c.next.Enabled(ctx, lvl)
}

func (c *chainHandler) Handle(ctx context.Context, rec slog.Record) error {
	h := c.next.Handle
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h(ctx, rec)
}

func (c *chainHandler) WithGroup(group string) slog.Handler {
	return &chainHandler{next: c.next.WithGroup(group), middlewares: c.middlewares}
}

func (c *chainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &chainHandler{next: c.next.WithAttrs(attrs), middlewares: c.middlewares}
}
