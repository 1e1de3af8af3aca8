package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joke-demo/internal/application/usecases"
)

func jsonUpload(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req
}

func TestUploadService_DataURL(t *testing.T) {
	s := NewUploadService(0)
	assert.Equal(t, int64(DefaultMaxUploadBytes), s.MaxBytes())

	input, err := s.ParseFromRequest(httptest.NewRecorder(), jsonUpload(`{"dataUrl":"data:image/png;base64,aGVsbG8="}`))
	require.NoError(t, err)

	assert.Equal(t, "dropped-image", input.Name)
	assert.Equal(t, []byte("hello"), input.Data)
	assert.Equal(t, "image/png", input.MimeType)
	assert.Equal(t, usecases.SourceDrop, input.Source)
}

func TestUploadService_DataURLErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty", `{"dataUrl":""}`, ErrMissingImage},
		{"not a data url", `{"dataUrl":"https://example.com/cat.jpg"}`, ErrMissingImage},
		{"too large", `{"dataUrl":"data:image/png;base64,aGVsbG8gd29ybGQ="}`, ErrUploadTooLarge},
	}

	s := NewUploadService(8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseFromRequest(httptest.NewRecorder(), jsonUpload(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
