package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"joke-demo/internal/application/usecases"
	"joke-demo/internal/domain/entities"
	domainservices "joke-demo/internal/domain/services"
)

const DefaultMaxUploadBytes = 10 * 1024 * 1024 // 10MB

var (
	ErrUploadTooLarge = errors.New("upload too large")
	ErrMissingImage   = errors.New("no image in upload")
)

// UploadService normalizes the two inbound channels (multipart file picker
// and JSON data-URL drop) into one usecases.UploadInput.
type UploadService struct {
	maxBytes int64
}

func NewUploadService(maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{maxBytes: maxBytes}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

type dataURLUpload struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

func (s *UploadService) ParseFromRequest(w http.ResponseWriter, r *http.Request) (usecases.UploadInput, error) {
	// base64 inflates by 4/3; leave room for the JSON envelope
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes*4/3+4096)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return s.parseDataURL(r)
	}
	return s.parseMultipart(r)
}

func (s *UploadService) parseMultipart(r *http.Request) (usecases.UploadInput, error) {
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		return usecases.UploadInput{}, classify(err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return usecases.UploadInput{}, ErrMissingImage
	}
	defer file.Close()

	if header.Size > s.maxBytes {
		return usecases.UploadInput{}, ErrUploadTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return usecases.UploadInput{}, fmt.Errorf("%w: %w", entities.ErrRead, err)
	}

	source := usecases.SourcePicker
	if r.FormValue("source") == string(usecases.SourceDrop) {
		source = usecases.SourceDrop
	}

	return usecases.UploadInput{
		Name:     header.Filename,
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Source:   source,
	}, nil
}

func (s *UploadService) parseDataURL(r *http.Request) (usecases.UploadInput, error) {
	var body dataURLUpload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return usecases.UploadInput{}, classify(err)
	}
	if strings.TrimSpace(body.DataURL) == "" {
		return usecases.UploadInput{}, ErrMissingImage
	}

	mimeType, data, err := domainservices.ParseDataURL(body.DataURL)
	if err != nil {
		return usecases.UploadInput{}, fmt.Errorf("%w: %w", ErrMissingImage, err)
	}
	if int64(len(data)) > s.maxBytes {
		return usecases.UploadInput{}, ErrUploadTooLarge
	}

	name := body.Name
	if name == "" {
		name = "dropped-image"
	}

	return usecases.UploadInput{
		Name:     name,
		Data:     data,
		MimeType: mimeType,
		Source:   usecases.SourceDrop,
	}, nil
}

func classify(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) ||
		strings.Contains(err.Error(), "request body too large") {
		return ErrUploadTooLarge
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return ErrMissingImage
	}
	return fmt.Errorf("%w: %w", entities.ErrRead, err)
}
