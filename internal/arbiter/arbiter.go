package arbiter

import (
	"context"
	"strings"
	"time"

	"github.com/looplab/fsm"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/speech"
	"github.com/sightline-vision/sightline/internal/status"
	"github.com/sightline-vision/sightline/internal/vision"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

// Arbitration modes. Text found on a stable multi-frame basis is the
// authoritative signal: once locked into text mode, scene description is
// suppressed so the single audio channel stays coherent.
const (
	StateObjectActive = "object_active"
	StateOCRActive    = "ocr_active"

	eventTextLocked = "text_locked"
	eventTextLost   = "text_lost"
)

// TextDetector is the OCR capability boundary.
type TextDetector interface {
	DetectText(ctx context.Context, f vision.Frame) []vision.TextObservation
}

// SceneDescriber is the captioning capability boundary.
type SceneDescriber interface {
	Describe(ctx context.Context, f vision.Frame) (string, error)
}

// Announcer receives at most one announcement per detection cycle.
type Announcer interface {
	Announce(a speech.Announcement)
}

// Arbiter is the per-frame decision engine. It runs the OCR path first,
// consults the stability filter, and only falls back to scene description
// when no stable text is present. Announcements are deduplicated against the
// last spoken string; leaving text mode clears that state so the first
// post-text caption is never swallowed by stale dedup.
type Arbiter struct {
	detector  TextDetector
	describer SceneDescriber
	announcer Announcer
	stability *StabilityFilter
	pub       *status.Publisher
	logger    *Logger.Logger
	cfg       config.DetectionConfig

	mode       *fsm.FSM
	lastSpoken string
}

func New(
	cfg config.DetectionConfig,
	detector TextDetector,
	describer SceneDescriber,
	announcer Announcer,
	pub *status.Publisher,
	logger *Logger.Logger,
) *Arbiter {
	a := &Arbiter{
		detector:  detector,
		describer: describer,
		announcer: announcer,
		stability: NewStabilityFilter(cfg.StabilityFrames),
		pub:       pub,
		logger:    logger,
		cfg:       cfg,
	}
	a.mode = fsm.NewFSM(
		StateObjectActive,
		fsm.Events{
			{Name: eventTextLocked, Src: []string{StateObjectActive}, Dst: StateOCRActive},
			{Name: eventTextLost, Src: []string{StateOCRActive}, Dst: StateObjectActive},
		},
		fsm.Callbacks{
			// Leaving text mode resets dedup so a caption equal to one spoken
			// before the text interlude is announced again.
			"enter_" + StateObjectActive: func(_ context.Context, e *fsm.Event) {
				a.lastSpoken = ""
			},
		},
	)
	return a
}

// Mode returns the current arbitration state.
func (a *Arbiter) Mode() string {
	return a.mode.Current()
}

// ProcessFrame runs one detection cycle: OCR, stability check, then either a
// verbatim text announcement or a capped scene caption.
func (a *Arbiter) ProcessFrame(ctx context.Context, f vision.Frame) {
	obs := a.detector.DetectText(ctx, f)
	detected := vision.ComposeText(obs, a.cfg.OCRConfidenceThreshold, a.cfg.MinTextLength)

	if detected != "" {
		a.pub.SetText(detected)
	} else {
		a.pub.SetText(status.NoTextDetected)
	}

	if stable, ok := a.stability.Observe(detected); ok {
		if a.mode.Is(StateObjectActive) {
			if err := a.mode.Event(ctx, eventTextLocked); err != nil {
				a.logger.Warnf("mode transition: %v", err)
			}
			a.logger.Infof("stable text locked: %q", stable)
		}
		if stable != a.lastSpoken {
			a.pub.SetAudio(stable)
			a.lastSpoken = stable
			a.announcer.Announce(speech.Announcement{Text: stable, Verbatim: true})
		}
		// Scene description is skipped entirely while text is stable.
		a.pub.SetObjects(status.ObjectsPaused)
		return
	}

	if a.mode.Is(StateOCRActive) {
		if err := a.mode.Event(ctx, eventTextLost); err != nil {
			a.logger.Warnf("mode transition: %v", err)
		}
		a.logger.Info("text lost, resuming scene description")
	}

	caption, err := a.describer.Describe(ctx, f)
	if err != nil {
		a.logger.Debugf("describe frame %d: %v", f.Seq, err)
		caption = ""
	}
	caption = strings.TrimSpace(caption)

	if caption != "" {
		a.pub.SetObjects(caption)
	} else {
		a.pub.SetObjects(status.NoObjectsDetected)
	}

	if caption != "" && caption != a.lastSpoken {
		a.pub.SetAudio(caption)
		a.lastSpoken = caption
		a.announcer.Announce(speech.Announcement{Text: caption})
	}
}

// Run consumes frames until ctx is cancelled, pausing a fixed interval
// between cycles to throttle detection independent of frame arrival rate.
func (a *Arbiter) Run(ctx context.Context, frames <-chan vision.Frame) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			a.ProcessFrame(ctx, f)

			select {
			case <-ctx.Done():
				return
			case <-time.After(a.cfg.Interval()):
			}
		}
	}
}
