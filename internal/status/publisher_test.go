package status

import (
	"sync"
	"testing"
)

func TestPublisherInitialSnapshot(t *testing.T) {
	p := NewPublisher()

	snap := p.Snapshot()
	if snap.Audio != "System initializing..." {
		t.Errorf("expected initializing sentinel, got %q", snap.Audio)
	}
	if snap.Text != "" || snap.Objects != "" {
		t.Errorf("expected empty text/objects, got %+v", snap)
	}
	if p.Frame() != nil {
		t.Error("expected no frame before first capture")
	}
}

func TestPublisherLastValueWins(t *testing.T) {
	p := NewPublisher()

	p.SetAudio("first")
	p.SetAudio("second")
	p.SetText("STOP")
	p.SetObjects("a red car")
	p.SetFrame([]byte{0xff, 0xd8})

	snap := p.Snapshot()
	if snap.Audio != "second" {
		t.Errorf("expected latest audio, got %q", snap.Audio)
	}
	if snap.Text != "STOP" || snap.Objects != "a red car" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if len(p.Frame()) != 2 {
		t.Errorf("expected stored frame, got %v", p.Frame())
	}
}

func TestPublisherConcurrentAccess(t *testing.T) {
	p := NewPublisher()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.SetAudio("speaking")
				p.SetFrame([]byte{byte(j)})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = p.Snapshot()
				_ = p.Frame()
			}
		}()
	}
	wg.Wait()
}
