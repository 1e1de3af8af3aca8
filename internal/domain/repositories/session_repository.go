package repositories

import (
	"context"

	"joke-demo/internal/domain/entities"
)

type SessionRepository interface {
	GetOrCreate(ctx context.Context, id entities.SessionID) (*entities.Session, error)
	Find(ctx context.Context, id entities.SessionID) (*entities.Session, error)

	// Delete forgets the session and releases its preview.
	Delete(ctx context.Context, id entities.SessionID) error

	Len() int
	Close() error
}
