package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCreateFile(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()

	req := models.CreateEntryRequest{
		Name: "myText.txt",
		Type: models.File,
		Data: "SGVsbG8gV2Vic3RhY2shCg==",
	}
	env.files.EXPECT().CreateEntry(gomock.Any(), testUserID, req).Return(models.FileEntry{
		ID:     testFileID,
		UserID: testUserID,
		Name:   "myText.txt",
		Type:   models.File,
	}, nil)

	body := `{"name":"myText.txt","type":"file","data":"SGVsbG8gV2Vic3RhY2shCg=="}`
	rr := env.do(withToken(httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(body))))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{
		"id": "`+testFileID+`",
		"userId": "`+testUserID+`",
		"name": "myText.txt",
		"type": "file",
		"isPublic": false,
		"parentId": 0
	}`, rr.Body.String())
}

func TestCreateFile_NumericParent(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()
	env.files.EXPECT().CreateEntry(gomock.Any(), testUserID, models.CreateEntryRequest{
		Name: "images",
		Type: models.Folder,
	}).Return(models.FileEntry{ID: testFileID, UserID: testUserID, Name: "images", Type: models.Folder}, nil)

	body := `{"name":"images","type":"folder","parentId":0}`
	rr := env.do(withToken(httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(body))))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateFile_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "missing name", err: service.ErrMissingName, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Missing name"}`},
		{name: "missing type", err: service.ErrMissingType, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Missing type"}`},
		{name: "missing data", err: service.ErrMissingData, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Missing data"}`},
		{name: "parent not found", err: service.ErrParentNotFound, wantStatus: http.StatusNotFound, wantBody: `{"error":"Parent not found"}`},
		{name: "parent not a folder", err: service.ErrParentNotFolder, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Parent is not a folder"}`},
		{name: "storage failure", err: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectSession()
			env.files.EXPECT().CreateEntry(gomock.Any(), testUserID, gomock.Any()).Return(models.FileEntry{}, tt.err)

			rr := env.do(withToken(httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(`{}`))))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestCreateFile_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(`{"name":"a"}`)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, unauthorizedBody, rr.Body.String())
}

func TestGetFile(t *testing.T) {
	env := newTestEnv(t)
	env.expectSession()
	env.files.EXPECT().GetEntry(gomock.Any(), testUserID, testFileID).Return(models.FileEntry{}, service.ErrEntryNotFound)

	rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/files/"+testFileID, nil)))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Not found"}`, rr.Body.String())
}

func TestListFiles(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.ListEntriesRequest
	}{
		{name: "defaults", query: "", want: models.ListEntriesRequest{}},
		{name: "root as zero", query: "?parentId=0&page=2", want: models.ListEntriesRequest{Page: 2}},
		{name: "folder", query: "?parentId=" + testFileID + "&page=1", want: models.ListEntriesRequest{ParentID: testFileID, Page: 1}},
		{name: "malformed page", query: "?page=abc", want: models.ListEntriesRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectSession()
			env.files.EXPECT().ListChildren(gomock.Any(), testUserID, tt.want).Return([]models.FileEntry{}, nil)

			rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/files"+tt.query, nil)))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, `[]`, rr.Body.String())
		})
	}
}

func TestPublishAndUnpublish(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ResolveSession(gomock.Any(), testToken).Return(testUserID, nil).Times(2)
	env.files.EXPECT().Publish(gomock.Any(), testUserID, testFileID).
		Return(models.FileEntry{ID: testFileID, UserID: testUserID, Name: "a", Type: models.File, IsPublic: true}, nil)
	env.files.EXPECT().Unpublish(gomock.Any(), testUserID, testFileID).
		Return(models.FileEntry{}, service.ErrEntryNotFound)

	rr := env.do(withToken(httptest.NewRequest(http.MethodPut, "/files/"+testFileID+"/publish", nil)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"isPublic":true`)

	rr = env.do(withToken(httptest.NewRequest(http.MethodPut, "/files/"+testFileID+"/unpublish", nil)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetFileData(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		token           bool
		requester       string
		size            int
		content         models.FileContent
		wantContentType string
	}{
		{
			name:            "anonymous reads public document",
			path:            "/files/" + testFileID + "/data",
			content:         models.FileContent{Name: "report.json", Data: []byte(`{"ok":true}`)},
			wantContentType: "application/json",
		},
		{
			name:            "owner reads thumbnail",
			path:            "/files/" + testFileID + "/data?size=250",
			token:           true,
			requester:       testUserID,
			size:            250,
			content:         models.FileContent{Name: "image.png", Data: []byte{0x89, 'P', 'N', 'G'}},
			wantContentType: "image/png",
		},
		{
			name:            "unknown extension",
			path:            "/files/" + testFileID + "/data",
			content:         models.FileContent{Name: "blob", Data: []byte{1, 2, 3}},
			wantContentType: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token {
				env.expectSession()
				withToken(req)
			}
			env.files.EXPECT().GetContent(gomock.Any(), tt.requester, testFileID, tt.size).Return(tt.content, nil)

			rr := env.do(req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantContentType, rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.content.Data, rr.Body.Bytes())
		})
	}
}

// brokenConnWriter accepts headers but fails every body write.
type brokenConnWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenConnWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestGetFileData_WriteErrorIsLogged(t *testing.T) {
	env := newTestEnv(t)
	env.files.EXPECT().GetContent(gomock.Any(), "", testFileID, 0).
		Return(models.FileContent{Name: "report.json", Data: []byte(`{"ok":true}`)}, nil)

	w := brokenConnWriter{ResponseRecorder: httptest.NewRecorder()}
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/"+testFileID+"/data", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.logs.String(), "error writing file data")
	assert.Contains(t, env.logs.String(), "connection reset by peer")
}

func TestGetFileData_UnknownTokenIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ResolveSession(gomock.Any(), testToken).Return("", service.ErrInvalidCredentials)
	env.files.EXPECT().GetContent(gomock.Any(), "", testFileID, 0).Return(models.FileContent{}, service.ErrEntryNotFound)

	rr := env.do(withToken(httptest.NewRequest(http.MethodGet, "/files/"+testFileID+"/data", nil)))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Not found"}`, rr.Body.String())
}

func TestGetFileData_InvalidSize(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/files/"+testFileID+"/data?size=big", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Invalid size"}`, rr.Body.String())
}

func TestGetFileData_Folder(t *testing.T) {
	env := newTestEnv(t)
	env.files.EXPECT().GetContent(gomock.Any(), "", testFileID, 0).Return(models.FileContent{}, service.ErrFolderHasNoContent)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/files/"+testFileID+"/data", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"A folder doesn't have content"}`, rr.Body.String())
}
