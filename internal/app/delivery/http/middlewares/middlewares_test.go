package middlewares

import (
	"net/http"
	"net/http/httptest"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(&config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
		IVR: config.IVR{APIKey: "vendor-key", WebhookRatePerSecond: 100, WebhookBurst: 1},
	}, zap.NewNop())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIVRAPIKey(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.IVRAPIKey(okHandler())

	t.Run("missing key is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ivr/voice", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ivr/voice", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "not-the-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ivr/voice", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "vendor-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthentication(t *testing.T) {
	m := newTestMiddlewares()

	var seenClinicianID string
	handler := m.Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenClinicianID, _ = r.Context().Value(constvars.CONTEXT_CLINICIAN_ID_KEY).(string)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/patients", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token exposes the clinician id", func(t *testing.T) {
		token, err := utils.GenerateClinicianJWT("clinician-1", "test-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/patients", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "clinician-1", seenClinicianID)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := utils.GenerateClinicianJWT("clinician-1", "other-secret", 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/patients", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	m := newTestMiddlewares()

	var seenRequestID string
	handler := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("caller supplied id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "caller-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "caller-id", seenRequestID)
		assert.Equal(t, "caller-id", rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("a fresh id is generated otherwise", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seenRequestID)
		assert.Equal(t, seenRequestID, rec.Header().Get(constvars.HeaderXRequestID))
	})
}
