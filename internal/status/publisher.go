package status

import "sync"

// Sentinel display values shown when no real detection is available.
const (
	NoTextDetected    = "No text detected"
	NoObjectsDetected = "No objects detected"
	ObjectsPaused     = "[Paused during text reading]"

	initializing = "System initializing..."
)

// Snapshot is a point-in-time copy of the display fields. There is no
// cross-field atomicity guarantee: a snapshot may mix values from adjacent
// detection cycles, which is acceptable for the dashboard.
type Snapshot struct {
	Audio   string `json:"audio"`
	Text    string `json:"text"`
	Objects string `json:"objects"`
}

// Publisher holds the latest pipeline outputs for the presentation layer.
// Each field is last-value-wins with a single writer; reads never block
// writers for long since all critical sections are plain copies.
type Publisher struct {
	mu      sync.RWMutex
	audio   string
	text    string
	objects string

	frameMu sync.RWMutex
	frame   []byte
}

func NewPublisher() *Publisher {
	return &Publisher{audio: initializing}
}

func (p *Publisher) SetAudio(s string) {
	p.mu.Lock()
	p.audio = s
	p.mu.Unlock()
}

func (p *Publisher) SetText(s string) {
	p.mu.Lock()
	p.text = s
	p.mu.Unlock()
}

func (p *Publisher) SetObjects(s string) {
	p.mu.Lock()
	p.objects = s
	p.mu.Unlock()
}

func (p *Publisher) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{Audio: p.audio, Text: p.text, Objects: p.objects}
}

// SetFrame stores the latest encoded frame. The caller hands over ownership
// of the buffer and must not mutate it afterwards.
func (p *Publisher) SetFrame(jpeg []byte) {
	p.frameMu.Lock()
	p.frame = jpeg
	p.frameMu.Unlock()
}

// Frame returns the latest encoded frame, or nil before the first capture.
func (p *Publisher) Frame() []byte {
	p.frameMu.RLock()
	defer p.frameMu.RUnlock()
	return p.frame
}
