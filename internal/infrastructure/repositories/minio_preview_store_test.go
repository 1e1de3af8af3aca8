package repositories

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrepos "joke-demo/internal/domain/repositories"
	"joke-demo/internal/domain/valueobjects"
)

type fakeObject struct {
	data        []byte
	contentType string
}

// fakeS3 answers the handful of path-style S3 calls the preview store makes.
type fakeS3 struct {
	mu          sync.Mutex
	buckets     map[string]bool
	objects     map[string]fakeObject
	makeBuckets int
}

func newFakeS3(t *testing.T, buckets ...string) (*fakeS3, *httptest.Server) {
	t.Helper()

	s3 := &fakeS3{buckets: map[string]bool{}, objects: map[string]fakeObject{}}
	for _, b := range buckets {
		s3.buckets[b] = true
	}
	srv := httptest.NewServer(s3)
	t.Cleanup(srv.Close)
	return s3, srv
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			f.makeBuckets++
			f.buckets[bucket] = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
		return
	}

	name := bucket + "/" + key
	switch r.Method {
	case http.MethodPut:
		data, err := readPayload(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.objects[name] = fakeObject{data: data, contentType: r.Header.Get("Content-Type")}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		obj, ok := f.objects[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.data)))
		w.Header().Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(obj.data)
		}
	case http.MethodDelete:
		delete(f.objects, name)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeS3) objectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// readPayload strips aws-chunked framing ("<hex>;chunk-signature=...\r\n<data>\r\n")
// used by signed uploads over plain HTTP.
func readPayload(r *http.Request) ([]byte, error) {
	if r.Header.Get("X-Amz-Decoded-Content-Length") == "" {
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
		if _, err := io.CopyN(&out, br, size); err != nil {
			return nil, err
		}
		if _, err := br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func newTestMinioStore(t *testing.T, srv *httptest.Server) *MinioPreviewStore {
	t.Helper()

	store, err := NewMinioPreviewStore(MinioConfig{
		Endpoint:  srv.Listener.Addr().String(),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "joke-previews",
	})
	require.NoError(t, err)
	return store
}

func TestMinioPreviewStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s3, srv := newFakeS3(t)
	store := newTestMinioStore(t, srv)
	img := newPNG(t)

	ref, err := store.Create(ctx, img)
	require.NoError(t, err)
	assert.False(t, ref.IsZero())
	assert.Equal(t, 1, s3.makeBuckets)
	assert.Equal(t, 1, s3.objectCount())

	rc, mimeType, err := store.Open(ctx, ref)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, img.Data(), data)

	require.NoError(t, store.Release(ctx, ref))
	assert.Zero(t, s3.objectCount())

	_, _, err = store.Open(ctx, ref)
	assert.ErrorIs(t, err, domainrepos.ErrPreviewNotFound)

	assert.NoError(t, store.Release(ctx, ref))
	assert.NoError(t, store.Release(ctx, valueobjects.PreviewRef("")))
}

func TestMinioPreviewStore_ExistingBucket(t *testing.T) {
	ctx := context.Background()
	s3, srv := newFakeS3(t, "joke-previews")
	store := newTestMinioStore(t, srv)

	_, _, err := store.Open(ctx, valueobjects.PreviewRef("missing"))
	assert.ErrorIs(t, err, domainrepos.ErrPreviewNotFound)

	_, err = store.Create(ctx, newPNG(t))
	require.NoError(t, err)
	assert.Zero(t, s3.makeBuckets)
}
