package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
)

// Base64Encoder reads the whole content once and returns standard base64
// without any data-URI prefix. It keeps no state between calls.
type Base64Encoder struct{}

func NewBase64Encoder() repositories.ImageEncoder {
	return &Base64Encoder{}
}

func (e *Base64Encoder) Encode(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", entities.ErrRead, err)
	}

	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return "", fmt.Errorf("%w: %w", entities.ErrRead, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", entities.ErrRead, err)
	}

	return sb.String(), nil
}

// DataURL builds "data:<mime>;base64,<payload>".
func DataURL(mimeType, encoded string) string {
	return "data:" + mimeType + ";base64," + encoded
}

// StripDataURIPrefix drops a leading "data:...," scheme prefix and returns
// the payload. Input without the prefix is returned unchanged.
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ParseDataURL splits a base64 data URL into its media type and payload.
func ParseDataURL(s string) (mimeType string, payload []byte, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return "", nil, fmt.Errorf("malformed data URL")
	}

	meta := s[len("data:"):i]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	mimeType = strings.TrimSuffix(meta, ";base64")

	payload, err = base64.StdEncoding.DecodeString(StripDataURIPrefix(s))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return mimeType, payload, nil
}
