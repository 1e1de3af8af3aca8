package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"joke-demo/internal/domain/entities"
	domainrepos "joke-demo/internal/domain/repositories"
)

const DefaultSessionCapacity = 1024

// LRUSessionRepository keeps the most recently used sessions in memory.
// Evicted, deleted and purged sessions release their preview.
type LRUSessionRepository struct {
	sessions *lru.Cache[entities.SessionID, *entities.Session]
	previews domainrepos.PreviewStore
}

func NewLRUSessionRepository(capacity int, previews domainrepos.PreviewStore) (*LRUSessionRepository, error) {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}

	r := &LRUSessionRepository{previews: previews}
	cache, err := lru.NewWithEvict[entities.SessionID, *entities.Session](capacity, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	r.sessions = cache
	return r, nil
}

func (r *LRUSessionRepository) GetOrCreate(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if s, ok := r.sessions.Get(id); ok {
		return s, nil
	}

	s := entities.NewSession(id)
	// another request may have created it meanwhile
	if prev, ok, _ := r.sessions.PeekOrAdd(id, s); ok {
		return prev, nil
	}
	return s, nil
}

func (r *LRUSessionRepository) Find(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}
	return s, nil
}

func (r *LRUSessionRepository) Delete(ctx context.Context, id entities.SessionID) error {
	if !r.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}
	return nil
}

func (r *LRUSessionRepository) Len() int {
	return r.sessions.Len()
}

// Close drops every session, releasing their previews.
func (r *LRUSessionRepository) Close() error {
	r.sessions.Purge()
	return nil
}

func (r *LRUSessionRepository) onEvict(id entities.SessionID, s *entities.Session) {
	s.Lock()
	ref := s.Close()
	s.Unlock()

	slog.Debug("session closed", "session", id, "age", time.Since(s.CreatedAt()))

	if ref.IsZero() || r.previews == nil {
		return
	}
	if err := r.previews.Release(context.Background(), ref); err != nil {
		slog.Warn("failed to release preview", "session", id, "preview", ref, "error", err)
	}
}
