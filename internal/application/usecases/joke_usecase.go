package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
	"joke-demo/internal/domain/services"
	"joke-demo/internal/domain/valueobjects"
)

const maxSessionAttempts = 3

type UploadSource string

const (
	SourcePicker UploadSource = "picker"
	SourceDrop   UploadSource = "drop"
)

type UploadInput struct {
	Name     string
	Data     []byte
	MimeType string
	Source   UploadSource
}

// StateOutput is a consistent snapshot of one session.
type StateOutput struct {
	State       entities.RequestState
	HasImage    bool
	ImageName   string
	Preview     valueobjects.PreviewRef
	Installable bool
}

type JokeUseCase struct {
	sessions      repositories.SessionRepository
	previews      repositories.PreviewStore
	encoder       repositories.ImageEncoder
	domainService *services.JokeDomainService
	machine       *services.StateMachine
}

func NewJokeUseCase(
	sessions repositories.SessionRepository,
	previews repositories.PreviewStore,
	encoder repositories.ImageEncoder,
	domainService *services.JokeDomainService,
) *JokeUseCase {
	return &JokeUseCase{
		sessions:      sessions,
		previews:      previews,
		encoder:       encoder,
		domainService: domainService,
		machine:       services.NewStateMachine(),
	}
}

// Upload replaces the session's selected image, clears any joke or error and
// releases the previous preview. Invalid images leave the session untouched.
func (uc *JokeUseCase) Upload(ctx context.Context, id entities.SessionID, input UploadInput) (*StateOutput, error) {
	image, err := valueobjects.NewImageData(input.Data, input.MimeType)
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	ref, err := uc.previews.Create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview: %w", err)
	}

	sess, err := uc.lockOpenSession(ctx, id)
	if err != nil {
		uc.release(ctx, ref)
		return nil, err
	}

	old := sess.ReplaceImage(entities.NewSelectedImage(input.Name, image, ref))
	next, err := uc.machine.Apply(sess.State(), services.UploadEvent())
	if err == nil {
		sess.SetState(next)
	}
	out := snapshot(sess)
	sess.Unlock()

	uc.release(ctx, old)

	if declared := image.DeclaredMimeType(); declared != "" && declared != image.MimeType() {
		slog.Debug("Upload", "session", id, "declaredMimeType", declared, "detectedMimeType", image.MimeType())
	}
	slog.Info("Upload", "session", id, "source", input.Source, "name", input.Name,
		"mimeType", image.MimeType(), "size", image.Size())

	return out, err
}

// lockOpenSession returns the session locked. A session closed between
// lookup and lock is gone from the repository, so the lookup is repeated.
func (uc *JokeUseCase) lockOpenSession(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	for attempt := 0; attempt < maxSessionAttempts; attempt++ {
		sess, err := uc.sessions.GetOrCreate(ctx, id)
		if err != nil {
			return nil, err
		}
		sess.Lock()
		if !sess.Closed() {
			return sess, nil
		}
		sess.Unlock()
	}
	return nil, fmt.Errorf("%w: %s closed while uploading", entities.ErrSessionNotFound, id)
}

// Generate submits the selected image. It returns ErrNoImage without any
// model call when nothing is selected, ErrRequestInFlight (state unchanged)
// while a request is running, and ErrGenerationFailed for every other failure.
func (uc *JokeUseCase) Generate(ctx context.Context, id entities.SessionID) (*StateOutput, error) {
	sess, err := uc.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	selected := sess.Image()
	event := services.SubmitEvent()
	if selected == nil {
		event = services.SubmitNoImageEvent()
	}
	next, err := uc.machine.Apply(sess.State(), event)
	if err != nil {
		out := snapshot(sess)
		sess.Unlock()
		return out, err
	}
	sess.SetState(next)
	epoch := sess.Epoch()
	if selected == nil {
		out := snapshot(sess)
		sess.Unlock()
		return out, entities.ErrNoImage
	}
	sess.Unlock()

	// once issued, a request runs to completion even if the caller goes away
	joke, genErr := uc.generate(context.WithoutCancel(ctx), selected)

	event = services.ResolveEvent(joke)
	if genErr != nil {
		event = services.RejectEvent()
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Epoch() != epoch {
		slog.Info("Generate", "session", id, "result", "discarded, image replaced while loading")
		event = services.DiscardEvent()
		genErr = nil
	}

	next, err = uc.machine.Apply(sess.State(), event)
	if err != nil {
		slog.Error("Generate", "session", id, "error", err)
		return snapshot(sess), err
	}
	sess.SetState(next)

	return snapshot(sess), genErr
}

func (uc *JokeUseCase) generate(ctx context.Context, selected *entities.SelectedImage) (string, error) {
	slog.Debug("Generate", "name", selected.Name(), "mimeType", selected.MimeType(),
		"selectedFor", time.Since(selected.SelectedAt()))

	encoded, err := uc.encoder.Encode(ctx, bytes.NewReader(selected.Image().Data()))
	if err != nil {
		slog.Error("Generate", "stage", "encode", "name", selected.Name(), "error", err)
		return "", entities.ErrGenerationFailed
	}

	return uc.domainService.GenerateJoke(ctx, encoded, selected.MimeType())
}

func (uc *JokeUseCase) State(ctx context.Context, id entities.SessionID) (*StateOutput, error) {
	sess, err := uc.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return snapshot(sess), nil
}

// OpenPreview serves the preview only while it is the session's current one.
func (uc *JokeUseCase) OpenPreview(ctx context.Context, id entities.SessionID, ref valueobjects.PreviewRef) (io.ReadCloser, string, error) {
	sess, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return nil, "", repositories.ErrPreviewNotFound
	}

	sess.Lock()
	selected := sess.Image()
	current := selected != nil && selected.Preview() == ref
	sess.Unlock()

	if !current {
		return nil, "", repositories.ErrPreviewNotFound
	}
	return uc.previews.Open(ctx, ref)
}

// Close ends the session and releases its preview.
func (uc *JokeUseCase) Close(ctx context.Context, id entities.SessionID) error {
	err := uc.sessions.Delete(ctx, id)
	if errors.Is(err, entities.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (uc *JokeUseCase) release(ctx context.Context, ref valueobjects.PreviewRef) {
	if ref.IsZero() {
		return
	}
	if err := uc.previews.Release(ctx, ref); err != nil {
		slog.Warn("failed to release preview", "preview", ref, "error", err)
	}
}

// snapshot must be called with the session locked.
func snapshot(sess *entities.Session) *StateOutput {
	out := &StateOutput{
		State:       sess.State(),
		Installable: sess.Installable(),
	}
	if img := sess.Image(); img != nil {
		out.HasImage = true
		out.ImageName = img.Name()
		out.Preview = img.Preview()
	}
	return out
}
