package notifier

import (
	"fmt"
	"io"

	"github.com/fkoehler/stadtticker/internal/event"
)

// DryRunNotifier prints messages instead of sending them.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the message that would be sent.
func (n *DryRunNotifier) Notify(ev event.Event) error {
	fmt.Fprintf(n.out, "--- %s ---\n%s\n\n", ev.UID, FormatMessage(ev))
	return nil
}
