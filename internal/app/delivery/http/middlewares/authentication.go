package middlewares

import (
	"context"
	"net/http"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"strings"
)

// Authentication guards clinician endpoints with a bearer token.
func (m *Middlewares) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		clinicianID, err := utils.ParseClinicianJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_CLINICIAN_ID_KEY, clinicianID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
