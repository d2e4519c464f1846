package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler_NoPanic(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	rec := httptest.NewRecorder()
	ErrorHandler(zap.NewNop())(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestErrorHandler_PanicRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "string panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			},
		},
		{
			name: "runtime panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var nilMap map[string]string
				nilMap["key"] = "value"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.ErrorLevel)
			rec := httptest.NewRecorder()

			assert.NotPanics(t, func() {
				ErrorHandler(zap.New(core))(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
			})

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, "Internal Server Error", body.Error)
			assert.Equal(t, "An unexpected error occurred", body.Message)
			assert.Equal(t, "/test", body.Path)
			assert.NotEmpty(t, body.Timestamp)

			assert.Equal(t, 1, logs.FilterMessage("panic_recovered").Len())
		})
	}
}

func TestErrorHandler_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		ErrorHandler(zap.NewNop())(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.Handler
		wantCode  int
		wantError string
	}{
		{name: "not found", handler: NotFoundHandler(zap.NewNop()), wantCode: http.StatusNotFound, wantError: "Not Found"},
		{name: "method not allowed", handler: MethodNotAllowedHandler(zap.NewNop()), wantCode: http.StatusMethodNotAllowed, wantError: "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, "/missing", body.Path)
		})
	}
}
