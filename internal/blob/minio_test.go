package blob

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noSuchKeyXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// s3Stub serves the path-style S3 calls minio-go makes for one bucket
// without checking signatures.
type s3Stub struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
}

func newS3Stub(t *testing.T) (*s3Stub, *httptest.Server) {
	t.Helper()

	stub := &s3Stub{buckets: map[string]bool{}, objects: map[string][]byte{}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return stub, srv
}

func (s *s3Stub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	if key == "" {
		switch {
		case r.URL.Query().Has("location"):
			_, _ = io.WriteString(w, `<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`)
		case r.Method == http.MethodHead && !s.buckets[bucket]:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			s.buckets[bucket] = true
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, err := readS3Body(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.objects[key] = body
		w.Header().Set("ETag", `"stub"`)
	case http.MethodHead, http.MethodGet:
		data, ok := s.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, noSuchKeyXML)
			}
			return
		}
		w.Header().Set("ETag", `"stub"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	case http.MethodDelete:
		delete(s.objects, key)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *s3Stub) hasBucket(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets[name]
}

func (s *s3Stub) object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// readS3Body decodes the aws-chunked body minio-go sends over plain http.
func readS3Body(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return io.ReadAll(r.Body)
	}

	var out bytes.Buffer
	br := bufio.NewReader(r.Body)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out.Bytes(), nil
		}
		if _, err = io.CopyN(&out, br, size); err != nil {
			return nil, err
		}
		if _, err = br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func newTestMinIO(t *testing.T) (Storage, *s3Stub) {
	t.Helper()

	stub, srv := newS3Stub(t)
	s, err := NewMinIO(config.MinIO{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "files",
	})
	require.NoError(t, err)
	return s, stub
}

func TestNewMinIO_CreatesBucket(t *testing.T) {
	_, stub := newTestMinIO(t)

	assert.True(t, stub.hasBucket("files"))
}

func TestMinIOStorage_PutGetDelete(t *testing.T) {
	s, stub := newTestMinIO(t)
	ctx := context.Background()

	location := s.Location("0195f0a2-1111-7000-8000-000000000001")
	require.Equal(t, "0195f0a2-1111-7000-8000-000000000001", location)

	require.NoError(t, s.Put(ctx, location, []byte("hello world")))
	stored, ok := stub.object(location)
	require.True(t, ok)
	assert.Equal(t, []byte("hello world"), stored)

	got, err := s.Get(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)

	require.NoError(t, s.Delete(ctx, location))
	_, ok = stub.object(location)
	assert.False(t, ok)

	_, err = s.Get(ctx, location)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMinIOStorage_GetMissingKey(t *testing.T) {
	s, _ := newTestMinIO(t)

	_, err := s.Get(context.Background(), "missing_500")

	require.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorContains(t, err, "missing_500")
}
