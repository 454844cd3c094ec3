package speech

import (
	"context"
	"testing"
	"time"
)

func TestMailboxLastWriteWins(t *testing.T) {
	m := NewMailbox()

	m.Announce(Announcement{Text: "first message"})
	m.Announce(Announcement{Text: "second message"})

	a, ok := m.Wait(context.Background(), 100*time.Millisecond)
	if !ok {
		t.Fatal("expected a pending announcement")
	}
	if a.Text != "second message" {
		t.Errorf("expected latest announcement, got %q", a.Text)
	}

	if _, ok := m.Wait(context.Background(), 20*time.Millisecond); ok {
		t.Error("mailbox should be empty after one dequeue")
	}
}

func TestMailboxIgnoresShortText(t *testing.T) {
	m := NewMailbox()

	m.Announce(Announcement{Text: ""})
	m.Announce(Announcement{Text: "  a "})

	if _, ok := m.Wait(context.Background(), 20*time.Millisecond); ok {
		t.Error("empty/short announcements must be ignored")
	}
}

func TestMailboxWaitTimesOut(t *testing.T) {
	m := NewMailbox()

	start := time.Now()
	_, ok := m.Wait(context.Background(), 30*time.Millisecond)
	if ok {
		t.Error("expected timeout with empty mailbox")
	}
	if time.Since(start) > time.Second {
		t.Error("wait overran its timeout")
	}
}

func TestMailboxWaitCancellation(t *testing.T) {
	m := NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Wait(ctx, 10*time.Second)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after context cancellation")
	}
}

func TestMailboxWakesWaiter(t *testing.T) {
	m := NewMailbox()

	got := make(chan Announcement, 1)
	go func() {
		if a, ok := m.Wait(context.Background(), 5*time.Second); ok {
			got <- a
		}
	}()

	time.Sleep(10 * time.Millisecond)
	m.Announce(Announcement{Text: "hello there"})

	select {
	case a := <-got:
		if a.Text != "hello there" {
			t.Errorf("expected %q, got %q", "hello there", a.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by announce")
	}
}
