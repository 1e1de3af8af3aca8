package entities

import "time"

type InstallOutcome string

const (
	InstallAccepted  InstallOutcome = "accepted"
	InstallDismissed InstallOutcome = "dismissed"
)

func (o InstallOutcome) Valid() bool {
	return o == InstallAccepted || o == InstallDismissed
}

// InstallPrompt is a one-shot capability: the host offered installation and
// the user may answer it once. A session holds at most one.
type InstallPrompt struct {
	platforms []string
	offeredAt time.Time
}

func NewInstallPrompt(platforms []string) *InstallPrompt {
	return &InstallPrompt{
		platforms: platforms,
		offeredAt: time.Now(),
	}
}

func (p *InstallPrompt) Platforms() []string {
	return p.platforms
}

func (p *InstallPrompt) OfferedAt() time.Time {
	return p.offeredAt
}
