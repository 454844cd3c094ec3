package speech

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sightline-vision/sightline/pkg/Logger"
)

// Synthesizer is the external speech capability: a synchronous
// speak-to-completion call. Failures must not crash the caller.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

const (
	pollTimeout  = 500 * time.Millisecond
	errorBackoff = 100 * time.Millisecond
)

// Speaker is the dedicated speech worker. It drains the mailbox, drops
// repeats of the immediately-preceding utterance, caps non-verbatim
// announcements at maxWords and hands the result to the synthesizer.
type Speaker struct {
	mailbox    *Mailbox
	synth      Synthesizer
	logger     *Logger.Logger
	maxWords   int
	lastSpoken string
}

func NewSpeaker(mailbox *Mailbox, synth Synthesizer, maxWords int, logger *Logger.Logger) *Speaker {
	return &Speaker{
		mailbox:  mailbox,
		synth:    synth,
		logger:   logger,
		maxWords: maxWords,
	}
}

// Run loops until ctx is cancelled. A failed utterance is logged and skipped
// after a brief backoff; the worker itself never terminates on speech errors.
func (s *Speaker) Run(ctx context.Context) {
	for ctx.Err() == nil {
		s.speakNext(ctx)
	}
}

func (s *Speaker) speakNext(ctx context.Context) {
	a, ok := s.mailbox.Wait(ctx, pollTimeout)
	if !ok {
		return
	}

	text := strings.TrimSpace(a.Text)
	if utf8.RuneCountInString(text) < 2 {
		return
	}
	if text == s.lastSpoken {
		return
	}
	if !a.Verbatim {
		text = TruncateWords(text, s.maxWords)
	}

	if err := s.synth.Speak(ctx, text); err != nil {
		s.logger.Errorf("speech error: %v", err)
		time.Sleep(errorBackoff)
		return
	}
	s.lastSpoken = text
}

// TruncateWords caps s at max whitespace-separated words.
func TruncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}
