package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-files-manager/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name   string
		status models.Status
		want   string
	}{
		{name: "all up", status: models.Status{Redis: true, DB: true}, want: `{"redis":true,"db":true}`},
		{name: "cache down", status: models.Status{DB: true}, want: `{"redis":false,"db":true}`},
		{name: "all down", want: `{"redis":false,"db":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.stats.EXPECT().Status(gomock.Any()).Return(tt.status)

			rr := env.do(httptest.NewRequest(http.MethodGet, "/status", nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	env.stats.EXPECT().Stats(gomock.Any()).Return(models.Stats{Users: 4, Files: 30})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"users":4,"files":30}`, rr.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	env := newTestEnv(t)
	env.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rr := env.do(httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "files-manager v1.2.3\n", rr.Body.String())
}
