package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/mock"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUserID = "0195f0a2-0000-7000-8000-000000000001"
	testFileID = "0195f0a2-1111-7000-8000-000000000002"
	testToken  = "031bffac-3edc-4e51-aaae-1c121317da8a"
)

type testEnv struct {
	auth    *mock.MockAuthService
	files   *mock.MockFileService
	stats   *mock.MockStatsService
	appInfo *mock.MockAppInfoService

	handler *Handler
	router  http.Handler
	logs    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		auth:    mock.NewMockAuthService(ctrl),
		files:   mock.NewMockFileService(ctrl),
		stats:   mock.NewMockStatsService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		logs:    &bytes.Buffer{},
	}

	services := &service.Services{
		AuthService:    env.auth,
		FileService:    env.files,
		StatsService:   env.stats,
		AppInfoService: env.appInfo,
	}

	h, err := NewHandler(services, prometheus.NewRegistry(), &logger.Logger{Logger: zerolog.New(env.logs)})
	require.NoError(t, err)

	env.handler = h
	env.router = h.Init()
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// expectSession makes testToken resolve to testUserID.
func (e *testEnv) expectSession() {
	e.auth.EXPECT().ResolveSession(gomock.Any(), testToken).Return(testUserID, nil)
}

func withToken(req *http.Request) *http.Request {
	req.Header.Set(tokenHeader, testToken)
	return req
}
