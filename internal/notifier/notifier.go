package notifier

import (
	"github.com/fkoehler/stadtticker/internal/event"
)

// Notifier delivers one notification per event.
type Notifier interface {
	// Notify sends a notification for ev. Implementations return the
	// transport error unwrapped enough for the pipeline to abort on it.
	Notify(ev event.Event) error
}
