package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"time"

	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/pkg/Logger"
	"github.com/smallnest/ringbuffer"
)

// playbackBufferSize decouples the synthesizer's HTTP download rate from the
// player's real-time consumption rate.
const playbackBufferSize = 64 * 1024

// PiperSynthesizer speaks through a wyoming-piper HTTP server. Each Speak
// call streams the synthesized WAV body into an external player process and
// blocks until playback completes.
type PiperSynthesizer struct {
	baseURL string
	voice   string
	player  []string
	client  *http.Client
	timeout time.Duration
	logger  *Logger.Logger
}

func NewPiper(cfg config.SpeechConfig, logger *Logger.Logger) (*PiperSynthesizer, error) {
	if len(cfg.Player) == 0 {
		return nil, fmt.Errorf("no audio player configured")
	}
	if _, err := exec.LookPath(cfg.Player[0]); err != nil {
		return nil, fmt.Errorf("audio player %q not found: %w", cfg.Player[0], err)
	}

	p := &PiperSynthesizer{
		baseURL: cfg.PiperURL,
		voice:   cfg.Voice,
		player:  cfg.Player,
		client:  &http.Client{},
		timeout: cfg.Timeout(),
		logger:  logger,
	}
	if err := p.probe(); err != nil {
		return nil, fmt.Errorf("piper server unreachable at %s: %w", cfg.PiperURL, err)
	}
	return p, nil
}

// probe checks that the TTS server answers at all; any HTTP response counts.
func (p *PiperSynthesizer) probe() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (p *PiperSynthesizer) Speak(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("empty text")
	}

	// rhasspy/wyoming-piper HTTP: GET /api/text-to-speech?text=...&voice=...
	// streams a WAV body on success.
	u, err := url.Parse(p.baseURL + "/api/text-to-speech")
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("text", text)
	if p.voice != "" {
		q.Set("voice", p.voice)
	}
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "audio/wav")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts http request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tts http %d: %s", resp.StatusCode, string(b))
	}

	return p.play(ctx, resp.Body)
}

// play pipes audio through a blocking ring buffer into the player process so
// a slow player never stalls the HTTP download mid-response.
func (p *PiperSynthesizer) play(ctx context.Context, audio io.Reader) error {
	cmd := exec.CommandContext(ctx, p.player[0], p.player[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("player stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	rb := ringbuffer.New(playbackBufferSize).SetBlocking(true)
	go func() {
		if _, err := io.Copy(rb, audio); err != nil {
			p.logger.Debugf("tts download interrupted: %v", err)
		}
		rb.CloseWriter()
	}()

	_, copyErr := io.Copy(stdin, rb)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("player exited: %w", err)
	}
	if copyErr != nil {
		return fmt.Errorf("stream audio to player: %w", copyErr)
	}
	return nil
}
