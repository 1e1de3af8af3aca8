package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joke-demo/internal/domain/entities"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestBase64Encoder_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		[]byte("cat.jpg pretending to be bytes"),
		bytes.Repeat([]byte{0xFF, 0xD8, 0x00, 0x7F}, 4096),
	}

	encoder := NewBase64Encoder()
	for _, p := range payloads {
		encoded, err := encoder.Encode(context.Background(), bytes.NewReader(p))
		require.NoError(t, err)

		stripped := StripDataURIPrefix(DataURL("image/jpeg", encoded))
		assert.Equal(t, encoded, stripped)

		decoded, err := base64.StdEncoding.DecodeString(stripped)
		require.NoError(t, err)
		assert.Equal(t, len(p), len(decoded))
		if len(p) > 0 {
			assert.Equal(t, p, decoded)
		}
	}
}

func TestBase64Encoder_ReadError(t *testing.T) {
	_, err := NewBase64Encoder().Encode(context.Background(), failingReader{})

	assert.ErrorIs(t, err, entities.ErrRead)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestBase64Encoder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBase64Encoder().Encode(ctx, bytes.NewReader([]byte("x")))

	assert.ErrorIs(t, err, entities.ErrRead)
}

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"jpeg data url", "data:image/jpeg;base64,aGVsbG8=", "aGVsbG8="},
		{"png data url", "data:image/png;base64,AAAA", "AAAA"},
		{"plain payload", "aGVsbG8=", "aGVsbG8="},
		{"prefix without comma", "data:image/png;base64", "data:image/png;base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDataURIPrefix(tt.in))
		})
	}
}

func TestParseDataURL(t *testing.T) {
	mimeType, payload, err := ParseDataURL("data:image/gif;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mimeType)
	assert.Equal(t, []byte("hello"), payload)

	for _, bad := range []string{
		"aGVsbG8=",
		"data:image/gif;base64",
		"data:text/plain,hello",
		"data:image/gif;base64,***",
	} {
		_, _, err := ParseDataURL(bad)
		assert.Error(t, err, bad)
	}
}
