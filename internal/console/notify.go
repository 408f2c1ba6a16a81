package console

import (
	"sync"
	"time"
)

const dismissAfter = 4 * time.Second

// Notifier holds the single transient notification shown by the watch
// dashboard. A new message replaces the current one; messages auto-dismiss
// four seconds after they were raised.
type Notifier struct {
	mu      sync.Mutex
	message string
	isError bool
	raised  time.Time

	now func() time.Time // injectable for tests
}

func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

func (n *Notifier) Info(message string)  { n.set(message, false) }
func (n *Notifier) Error(message string) { n.set(message, true) }

func (n *Notifier) set(message string, isError bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.isError = isError
	n.raised = n.now()
}

// Current returns the live notification, if one has not yet dismissed.
func (n *Notifier) Current() (message string, isError, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" || n.now().Sub(n.raised) >= dismissAfter {
		return "", false, false
	}
	return n.message, n.isError, true
}
