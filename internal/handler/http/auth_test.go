package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const unauthorizedBody = `{"error":"Unauthorized"}`

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		email      string
		password   string
		result     models.User
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"email":"bob@dylan.com","password":"toto1234!"}`,
			email:      "bob@dylan.com",
			password:   "toto1234!",
			result:     models.User{ID: testUserID, Email: "bob@dylan.com"},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"` + testUserID + `","email":"bob@dylan.com"}`,
		},
		{
			name:       "missing email",
			body:       `{"password":"toto1234!"}`,
			password:   "toto1234!",
			err:        service.ErrMissingEmail,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing email"}`,
		},
		{
			name:       "missing password",
			body:       `{"email":"bob@dylan.com"}`,
			email:      "bob@dylan.com",
			err:        service.ErrMissingPassword,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing password"}`,
		},
		{
			name:       "already exist",
			body:       `{"email":"bob@dylan.com","password":"x"}`,
			email:      "bob@dylan.com",
			password:   "x",
			err:        service.ErrAlreadyExist,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Already exist"}`,
		},
		{
			name:       "empty body reports the first missing field",
			err:        service.ErrMissingEmail,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing email"}`,
		},
		{
			name:       "unexpected error is hidden",
			body:       `{"email":"bob@dylan.com","password":"x"}`,
			email:      "bob@dylan.com",
			password:   "x",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.auth.EXPECT().RegisterUser(gomock.Any(), tt.email, tt.password).Return(tt.result, tt.err)

			rr := env.do(httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Invalid JSON"}`, rr.Body.String())
}

func TestConnect(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Authenticate(gomock.Any(), "bob@dylan.com", "toto1234!").
		Return(models.Token{Token: testToken}, nil)

	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.SetBasicAuth("bob@dylan.com", "toto1234!")
	rr := env.do(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"token":"`+testToken+`"}`, rr.Body.String())
}

func TestConnect_PasswordWithColon(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Authenticate(gomock.Any(), "bob@dylan.com", "to:to").
		Return(models.Token{Token: testToken}, nil)

	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.SetBasicAuth("bob@dylan.com", "to:to")

	assert.Equal(t, http.StatusOK, env.do(req).Code)
}

func TestConnect_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
		authed bool
	}{
		{name: "no header"},
		{name: "not basic", header: "Bearer abc"},
		{name: "not base64", header: "Basic %%%"},
		{name: "wrong credentials", header: "Basic Ym9iQGR5bGFuLmNvbTp3cm9uZw==", authed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.authed {
				env.auth.EXPECT().Authenticate(gomock.Any(), "bob@dylan.com", "wrong").
					Return(models.Token{}, service.ErrInvalidCredentials)
			}

			req := httptest.NewRequest(http.MethodGet, "/connect", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := env.do(req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, unauthorizedBody, rr.Body.String())
		})
	}
}

func TestDisconnect_NoContent(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()
	env.auth.EXPECT().Revoke(gomock.Any(), testToken).Return(nil)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/disconnect", nil)
	require.NoError(t, err)
	req.Header.Set(tokenHeader, testToken)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)
	assert.Empty(t, resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Content-Length"))
}

func TestDisconnect_Unauthorized(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/disconnect", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, unauthorizedBody, rr.Body.String())
	})

	t.Run("unknown token", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.EXPECT().ResolveSession(gomock.Any(), testToken).Return("", service.ErrInvalidCredentials)

		rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/disconnect", nil)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, unauthorizedBody, rr.Body.String())
	})

	t.Run("revoked concurrently", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectSession()
		env.auth.EXPECT().Revoke(gomock.Any(), testToken).Return(service.ErrInvalidCredentials)

		rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/disconnect", nil)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, unauthorizedBody, rr.Body.String())
	})
}

func TestAuth_SessionStoreDown(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ResolveSession(gomock.Any(), testToken).Return("", errors.New("error reading session: dial tcp"))

	rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/users/me", nil)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"error":"Internal server error"}`, rr.Body.String())
}

func TestGetMe(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()
	env.auth.EXPECT().Me(gomock.Any(), testUserID).Return(models.User{ID: testUserID, Email: "bob@dylan.com"}, nil)

	rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/users/me", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"id":"`+testUserID+`","email":"bob@dylan.com"}`, rr.Body.String())
}
