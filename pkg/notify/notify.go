// Package notify sends best-effort system notifications.
package notify

import (
	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// Notifier delivers a system notification. Implementations must not block.
type Notifier interface {
	Notify(title, body string)
}

// Fyne sends notifications through the fyne app.
type Fyne struct {
	app fyne.App
	log zerolog.Logger
}

// NewFyne creates a Notifier backed by app.
func NewFyne(app fyne.App, log zerolog.Logger) *Fyne {
	return &Fyne{app: app, log: log.With().Str("component", "notify").Logger()}
}

func (f *Fyne) Notify(title, body string) {
	f.log.Debug().Str("title", title).Str("body", body).Msg("Sending notification")
	f.app.SendNotification(fyne.NewNotification(title, body))
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, string) {}

type gated struct {
	next    Notifier
	enabled func() bool
}

// Gate returns a Notifier that forwards to next only while enabled reports
// true. enabled is consulted on every call.
func Gate(next Notifier, enabled func() bool) Notifier {
	return gated{next: next, enabled: enabled}
}

func (g gated) Notify(title, body string) {
	if g.enabled() {
		g.next.Notify(title, body)
	}
}
