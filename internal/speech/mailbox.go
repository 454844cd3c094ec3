package speech

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Announcement is one utterance destined for the speech sink. Verbatim
// announcements (read-aloud text) bypass the speaker's word cap; scene
// captions do not.
type Announcement struct {
	Text     string
	Verbatim bool
}

// Mailbox is a single-slot, most-recent-wins buffer between the detection
// pipeline and the speech worker. Announcing replaces any unconsumed entry so
// spoken output never lags the latest decision by more than one utterance.
type Mailbox struct {
	mu     sync.Mutex
	slot   *Announcement
	notify chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Announce stores a for the speech worker, discarding any pending entry.
// Empty or near-empty text is ignored.
func (m *Mailbox) Announce(a Announcement) {
	if utf8.RuneCountInString(strings.TrimSpace(a.Text)) < 3 {
		return
	}

	m.mu.Lock()
	m.slot = &a
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Wait blocks until an announcement is available, the timeout elapses or ctx
// is cancelled. The timeout exists so the speech worker can re-check its
// cancellation condition, not as a functional deadline.
func (m *Mailbox) Wait(ctx context.Context, timeout time.Duration) (Announcement, bool) {
	if a, ok := m.take(); ok {
		return a, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Announcement{}, false
	case <-timer.C:
		return Announcement{}, false
	case <-m.notify:
		return m.take()
	}
}

func (m *Mailbox) take() (Announcement, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return Announcement{}, false
	}
	a := *m.slot
	m.slot = nil
	return a, true
}
