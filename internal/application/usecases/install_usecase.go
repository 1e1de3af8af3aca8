package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
)

// InstallUseCase tracks the host's one-shot "install as app" offer.
type InstallUseCase struct {
	sessions repositories.SessionRepository
}

func NewInstallUseCase(sessions repositories.SessionRepository) *InstallUseCase {
	return &InstallUseCase{
		sessions: sessions,
	}
}

// Offer stashes the prompt, replacing an unanswered earlier one.
func (uc *InstallUseCase) Offer(ctx context.Context, id entities.SessionID, platforms []string) (*StateOutput, error) {
	sess, err := uc.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.OfferInstall(entities.NewInstallPrompt(platforms))
	return snapshot(sess), nil
}

// Answer consumes the prompt. It can succeed at most once per offer.
func (uc *InstallUseCase) Answer(ctx context.Context, id entities.SessionID, outcome entities.InstallOutcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("invalid install outcome %q", outcome)
	}

	sess, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return entities.ErrNoInstallPrompt
	}

	sess.Lock()
	prompt, ok := sess.TakeInstallPrompt()
	sess.Unlock()

	if !ok {
		return entities.ErrNoInstallPrompt
	}

	slog.Info("Install", "session", id, "outcome", outcome, "platforms", prompt.Platforms(),
		"answeredAfter", time.Since(prompt.OfferedAt()))
	return nil
}
