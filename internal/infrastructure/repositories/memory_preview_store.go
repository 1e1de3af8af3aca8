package repositories

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	domainrepos "joke-demo/internal/domain/repositories"
	"joke-demo/internal/domain/valueobjects"
)

type memoryPreview struct {
	data     []byte
	mimeType string
}

type MemoryPreviewStore struct {
	previews map[valueobjects.PreviewRef]memoryPreview
	mu       sync.RWMutex
}

func NewMemoryPreviewStore() *MemoryPreviewStore {
	return &MemoryPreviewStore{
		previews: make(map[valueobjects.PreviewRef]memoryPreview),
	}
}

func (s *MemoryPreviewStore) Create(ctx context.Context, image *valueobjects.ImageData) (valueobjects.PreviewRef, error) {
	ref := valueobjects.PreviewRef(uuid.NewString())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.previews[ref] = memoryPreview{data: image.Data(), mimeType: image.MimeType()}
	return ref, nil
}

func (s *MemoryPreviewStore) Open(ctx context.Context, ref valueobjects.PreviewRef) (io.ReadCloser, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.previews[ref]
	if !ok {
		return nil, "", domainrepos.ErrPreviewNotFound
	}
	return io.NopCloser(bytes.NewReader(p.data)), p.mimeType, nil
}

func (s *MemoryPreviewStore) Release(ctx context.Context, ref valueobjects.PreviewRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.previews, ref)
	return nil
}

// Len reports how many previews are live.
func (s *MemoryPreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.previews)
}
