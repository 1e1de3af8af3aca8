package entities

import (
	"time"

	"joke-demo/internal/domain/valueobjects"
)

// SelectedImage is the image the next submit will send. It is replaced
// wholesale by every upload.
type SelectedImage struct {
	name       string
	image      *valueobjects.ImageData
	preview    valueobjects.PreviewRef
	selectedAt time.Time
}

func NewSelectedImage(name string, image *valueobjects.ImageData, preview valueobjects.PreviewRef) *SelectedImage {
	return &SelectedImage{
		name:       name,
		image:      image,
		preview:    preview,
		selectedAt: time.Now(),
	}
}

func (s *SelectedImage) Name() string {
	return s.name
}

func (s *SelectedImage) Image() *valueobjects.ImageData {
	return s.image
}

func (s *SelectedImage) MimeType() string {
	return s.image.MimeType()
}

func (s *SelectedImage) Preview() valueobjects.PreviewRef {
	return s.preview
}

func (s *SelectedImage) SelectedAt() time.Time {
	return s.selectedAt
}
