package requestcontext

import (
	"context"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

type clientIPKey struct{}

type WithClientIPConfig struct {
	// TrustedHeader names a header set by the edge proxy, e.g. X-Real-IP or CF-Connecting-IP.
	// A valid IP in it wins over everything else.
	TrustedHeader string `mapstructure:"trusted_header"`

	// TrustedProxiesIP lists the CIDR ranges of every proxy in front of the server.
	// The client is the last X-Forwarded-For entry outside these ranges.
	TrustedProxiesIP []string `mapstructure:"trusted_proxies_ip"`

	// RejectMalformedRequest answers 403 when the request came through proxies
	// but no trusted source identifies the client.
	RejectMalformedRequest bool `mapstructure:"reject_malformed_request"`
}

// WithClientIP stores the client IP, resisting X-Forwarded-For spoofing when trusted proxies are configured.
// It fails on an invalid CIDR.
func WithClientIP(config WithClientIPConfig) (Option, error) {
	proxies := make([]*net.IPNet, 0, len(config.TrustedProxiesIP))
	for _, cidr := range config.TrustedProxiesIP {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid trusted proxy range %q", cidr)
		}
		proxies = append(proxies, ipnet)
	}

	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		if config.TrustedHeader != "" {
			if ip := net.ParseIP(c.Get(config.TrustedHeader)); ip != nil {
				return withClientIP(ctx, ip.String()), nil
			}
		}

		forwarded := c.IPs()
		if len(forwarded) == 0 {
			return withClientIP(ctx, c.IP()), nil
		}

		if len(proxies) > 0 {
			for i := len(forwarded) - 1; i >= 0; i-- {
				if ip := net.ParseIP(forwarded[i]); ip != nil && !isTrusted(proxies, ip) {
					return withClientIP(ctx, ip.String()), nil
				}
			}
			return withClientIP(ctx, forwarded[0]), nil
		}

		if config.RejectMalformedRequest {
			logger.WarnContext(ctx, "Client IP is not verifiable, rejecting request",
				slogx.String("ip", c.IP()),
				slogx.Any("forwarded", forwarded),
			)
			return nil, &rejection{status: http.StatusForbidden, message: "not allowed to access"}
		}
		return withClientIP(ctx, forwarded[0]), nil
	}, nil
}

// GetClientIP returns the IP stored by [WithClientIP], or "".
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func withClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func isTrusted(proxies []*net.IPNet, ip net.IP) bool {
	for _, r := range proxies {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}
