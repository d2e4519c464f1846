package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
		writeBody     bool
		wantStatus    int
	}{
		{name: "GET request", method: http.MethodGet, path: "/", handlerStatus: http.StatusOK, wantStatus: http.StatusOK},
		{name: "explicit 201", method: http.MethodPost, path: "/", handlerStatus: http.StatusCreated, wantStatus: http.StatusCreated},
		{name: "404 request", method: http.MethodGet, path: "/notfound", handlerStatus: http.StatusNotFound, wantStatus: http.StatusNotFound},
		{name: "implicit 200 on write", method: http.MethodGet, path: "/", writeBody: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.writeBody {
					_, _ = w.Write([]byte("ok"))
					return
				}
				w.WriteHeader(tt.handlerStatus)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req = req.WithContext(WithRequestID(req.Context(), "req-1"))
			rec := httptest.NewRecorder()

			Logging(zap.New(core))(handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			entries := logs.FilterMessage("http_request").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.method, fields["method"])
			assert.Equal(t, tt.path, fields["path"])
			assert.EqualValues(t, tt.wantStatus, fields["status_code"])
			assert.Equal(t, "req-1", fields["request_id"])
			assert.Equal(t, "http://localhost:5173", fields["origin"])
		})
	}
}

func TestStatusRecorder_FirstWriteHeaderWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)
	sr.WriteHeader(http.StatusAccepted)
	sr.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusAccepted, sr.statusCode)
	assert.Equal(t, rec, sr.Unwrap())
}
