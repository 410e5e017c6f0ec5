package transport

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cargomarket/backend/constant"
	iprepo "github.com/cargomarket/backend/repository/ipblacklist"
	redisrepo "github.com/cargomarket/backend/repository/redis"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
)

// IPBlacklistMiddleware rejects requests from blocked addresses. The list is
// served from a Redis cache and reloaded from MySQL on cache miss; a failed
// reload lets the request through rather than blocking everyone.
func IPBlacklistMiddleware(redisRepo redisrepo.Repository, ipRepo iprepo.IPBlacklistRepository, cacheTTL time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r)

			ips, cached, err := redisRepo.GetBlacklistedIPs(ctx)
			if err != nil {
				logger.Error("[IPBlacklistMiddleware] err GetBlacklistedIPs", zap.String("error", err.Error()))
			}
			if !cached {
				ips, err = ipRepo.ListAllIPs(ctx)
				if err != nil {
					logger.Error("[IPBlacklistMiddleware] err ListAllIPs", zap.String("error", err.Error()))
					next.ServeHTTP(w, r)
					return
				}
				if err := redisRepo.SetBlacklistedIPs(ctx, ips, cacheTTL); err != nil {
					logger.Error("[IPBlacklistMiddleware] err SetBlacklistedIPs", zap.String("error", err.Error()))
				}
			}

			for _, blocked := range ips {
				if blocked == ip {
					writeError(w, errors.SetCustomError(constant.ErrIPBlacklisted))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers X-Forwarded-For since the service runs behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
