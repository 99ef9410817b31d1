package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWithTraceID(t *testing.T) {
	t.Run("reuses incoming id", func(t *testing.T) {
		env := newTestEnv(t)
		env.stats.EXPECT().Status(gomock.Any()).Return(models.Status{})

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set(traceIDHeader, "my-custom-trace-id")
		rr := env.do(req)

		assert.Equal(t, "my-custom-trace-id", rr.Header().Get(traceIDHeader))
		assert.Contains(t, env.logs.String(), `"trace_id":"my-custom-trace-id"`)
	})

	t.Run("generates an id", func(t *testing.T) {
		env := newTestEnv(t)
		env.stats.EXPECT().Status(gomock.Any()).Return(models.Status{})

		rr := env.do(httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.NoError(t, uuid.Validate(rr.Header().Get(traceIDHeader)))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		env := newTestEnv(t)
		env.stats.EXPECT().Status(gomock.Any()).Return(models.Status{})

		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set(traceIDHeader, strings.Repeat("a", maxTraceIDLen+1))
		rr := env.do(req)

		assert.NoError(t, uuid.Validate(rr.Header().Get(traceIDHeader)))
	})
}

func TestWithLogging(t *testing.T) {
	env := newTestEnv(t)
	env.stats.EXPECT().Stats(gomock.Any()).Return(models.Stats{})

	env.do(httptest.NewRequest(http.MethodGet, "/stats?x=1", nil))

	logs := env.logs.String()
	assert.Contains(t, logs, `"uri":"/stats?x=1"`)
	assert.Contains(t, logs, `"method":"GET"`)
	assert.Contains(t, logs, `"status":200`)
	assert.Contains(t, logs, `"size":21`)
}

func TestAuth_StoresSessionInContext(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()

	var gotUser, gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = utils.GetUserIDFromContext(r.Context())
		gotToken, _ = utils.GetTokenFromContext(r.Context())
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := withToken(httptest.NewRequest(http.MethodGet, "/", nil))
	req = req.WithContext(env.handler.logger.WithContext(req.Context()))
	env.handler.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, testUserID, gotUser)
	assert.Equal(t, testToken, gotToken)
	assert.Contains(t, env.logs.String(), `"user_id":"`+testUserID+`"`)
}

func TestWithMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.stats.EXPECT().Status(gomock.Any()).Return(models.Status{}).Times(2)
	env.expectSession()
	env.files.EXPECT().GetEntry(gomock.Any(), testUserID, testFileID).Return(models.FileEntry{ID: testFileID}, nil)

	env.do(httptest.NewRequest(http.MethodGet, "/status", nil))
	env.do(httptest.NewRequest(http.MethodGet, "/status", nil))
	env.do(withToken(httptest.NewRequest(http.MethodGet, "/files/"+testFileID, nil)))
	env.do(httptest.NewRequest(http.MethodGet, "/files", nil))

	counter := env.handler.metrics.requestCount
	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues("GET", "/status", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("GET", "/files/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("GET", "/files", "401")))

	rr := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/status",status="200"} 2`)
	assert.Contains(t, rr.Body.String(), "http_request_duration_seconds")
	assert.NotContains(t, rr.Body.String(), `path="/metrics"`)
}

func TestWithMetrics_UnmatchedPathsShareOneSeries(t *testing.T) {
	env := newTestEnv(t)

	for i := range 50 {
		rr := env.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan-%d", i), nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	counter := env.handler.metrics.requestCount
	assert.Equal(t, 1, testutil.CollectAndCount(counter))
	assert.Equal(t, 50.0, testutil.ToFloat64(counter.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(env.handler.metrics.requestDuration))
}

func TestRouting_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope"},
		{name: "unsupported method", method: http.MethodDelete, path: "/status"},
		{name: "unsupported method on pattern", method: http.MethodDelete, path: "/files/" + testFileID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rr := env.do(httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, `{"error":"Not found"}`, rr.Body.String())
		})
	}
}

func TestRecoverer(t *testing.T) {
	env := newTestEnv(t)
	env.stats.EXPECT().Stats(gomock.Any()).DoAndReturn(func(any) models.Stats {
		panic(errors.New("boom"))
	})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestResponseWriter(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		w := &responseWriter{ResponseWriter: httptest.NewRecorder()}
		assert.Equal(t, http.StatusOK, w.Status())

		n, err := w.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, w.size)
		assert.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("first header wins", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, w.Status())
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Same(t, rr, w.Unwrap())
	})
}
