package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"overlayapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	var scoped *zap.Logger
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scoped, _ = r.Context().Value(models.LoggerKey{}).(*zap.Logger)
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))

	require.NotNil(t, scoped)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-Id"))

	entries := logs.FilterMessage("Request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/records", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, recorder.Header().Get("X-Request-Id"), fields["request_id"])
}

func TestLogger_ServerErrorsAreWarnings(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}
