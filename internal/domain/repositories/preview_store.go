package repositories

import (
	"context"
	"errors"
	"io"

	"joke-demo/internal/domain/valueobjects"
)

var ErrPreviewNotFound = errors.New("preview not found")

// PreviewStore keeps a viewable copy of the selected image until it is released.
type PreviewStore interface {
	Create(ctx context.Context, image *valueobjects.ImageData) (valueobjects.PreviewRef, error)

	// Open returns the preview content and its media type.
	Open(ctx context.Context, ref valueobjects.PreviewRef) (io.ReadCloser, string, error)

	// Release is idempotent; releasing an unknown ref is not an error.
	Release(ctx context.Context, ref valueobjects.PreviewRef) error
}
