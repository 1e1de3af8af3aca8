package valueobjects

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

var (
	ErrEmptyImage       = errors.New("image data cannot be empty")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

var mimeTypes = map[ImageFormat]string{
	JPEG: "image/jpeg",
	PNG:  "image/png",
	GIF:  "image/gif",
	WEBP: "image/webp",
}

type ImageData struct {
	data     []byte
	format   ImageFormat
	mimeType string

	// as reported by the client, kept for diagnostics only
	declaredMimeType string
}

// NewImageData sniffs the content and rejects anything that is not one of the
// supported image formats. The detected media type wins over declaredMimeType.
func NewImageData(data []byte, declaredMimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return &ImageData{
		data:     data,
		format:   format,
		mimeType: mimeTypes[format],

		declaredMimeType: strings.ToLower(strings.TrimSpace(declaredMimeType)),
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) DeclaredMimeType() string {
	return i.declaredMimeType
}

func (i *ImageData) Size() int {
	return len(i.data)
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
