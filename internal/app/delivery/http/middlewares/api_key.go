package middlewares

import (
	"crypto/subtle"
	"net/http"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
)

// IVRAPIKey authenticates the telephony vendor's webhooks with a shared key.
func (m *Middlewares) IVRAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get(constvars.HeaderXAPIKey)
		expected := m.InternalConfig.IVR.APIKey

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
