package middlewares

import (
	"net/http"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"

	"golang.org/x/time/rate"
)

// IVRRateLimiter throttles the webhook endpoints with a shared token bucket. The
// vendor delivers sequential per-call webhooks, so a modest global budget is enough.
func (m *Middlewares) IVRRateLimiter(next http.Handler) http.Handler {
	limiter := rate.NewLimiter(
		rate.Limit(m.InternalConfig.IVR.WebhookRatePerSecond),
		m.InternalConfig.IVR.WebhookBurst,
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
