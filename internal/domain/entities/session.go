package entities

import (
	"sync"
	"time"

	"joke-demo/internal/domain/valueobjects"
)

type SessionID string

// Session holds one browser's interaction cycle. Accessors other than ID
// require the caller to hold the session lock.
type Session struct {
	id SessionID

	mu      sync.Mutex
	image   *SelectedImage
	state   RequestState
	epoch   uint64
	install *InstallPrompt
	closed  bool

	createdAt time.Time
}

func NewSession(id SessionID) *Session {
	return &Session{
		id:        id,
		state:     Idle{},
		createdAt: time.Now(),
	}
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

func (s *Session) Image() *SelectedImage {
	return s.image
}

// ReplaceImage installs image as the current selection, bumps the epoch and
// returns the preview reference of the image it replaced, which the caller
// must release.
func (s *Session) ReplaceImage(image *SelectedImage) valueobjects.PreviewRef {
	var old valueobjects.PreviewRef
	if s.image != nil {
		old = s.image.Preview()
	}
	s.image = image
	s.epoch++
	return old
}

// ClearImage drops the selection and returns its preview reference.
func (s *Session) ClearImage() valueobjects.PreviewRef {
	return s.ReplaceImage(nil)
}

// Epoch changes every time the selected image changes.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

func (s *Session) State() RequestState {
	return s.state
}

func (s *Session) SetState(state RequestState) {
	s.state = state
}

func (s *Session) OfferInstall(prompt *InstallPrompt) {
	s.install = prompt
}

func (s *Session) Installable() bool {
	return s.install != nil
}

// TakeInstallPrompt consumes the stashed install prompt, if any.
func (s *Session) TakeInstallPrompt() (*InstallPrompt, bool) {
	p := s.install
	s.install = nil
	return p, p != nil
}

// Close marks the session as gone from its repository and returns the preview
// reference of the image it still held. A closed session accepts no new image.
func (s *Session) Close() valueobjects.PreviewRef {
	s.closed = true
	s.install = nil
	return s.ClearImage()
}

func (s *Session) Closed() bool {
	return s.closed
}
