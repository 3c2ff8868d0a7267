package middlewares

import (
	"fmt"
	"net/http"
	"pulsecheck-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// ErrorHandler converts panics into a clean 500 response instead of a dropped
// connection.
func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				m.Log.Error("panic recovered", zap.Any("panic", recovered))
				utils.BuildErrorResponse(m.Log, w, fmt.Errorf("panic: %v", recovered))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
