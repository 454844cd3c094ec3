package speech

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sightline-vision/sightline/pkg/Logger"
)

type fakeSynth struct {
	spoken []string
	fail   int // fail this many calls before succeeding
}

func (s *fakeSynth) Speak(ctx context.Context, text string) error {
	if s.fail > 0 {
		s.fail--
		return fmt.Errorf("synthesis failed")
	}
	s.spoken = append(s.spoken, text)
	return nil
}

func newTestSpeaker(synth *fakeSynth) (*Speaker, *Mailbox) {
	m := NewMailbox()
	return NewSpeaker(m, synth, 15, Logger.New(true)), m
}

func TestSpeakerTruncatesCaptions(t *testing.T) {
	synth := &fakeSynth{}
	s, m := newTestSpeaker(synth)

	words := make([]string, 20)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	m.Announce(Announcement{Text: strings.Join(words, " ")})
	s.speakNext(context.Background())

	if len(synth.spoken) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(synth.spoken))
	}
	if got := len(strings.Fields(synth.spoken[0])); got != 15 {
		t.Errorf("expected 15 words after truncation, got %d", got)
	}
	if !strings.HasPrefix(synth.spoken[0], "word0 word1") {
		t.Errorf("truncation must keep the leading words, got %q", synth.spoken[0])
	}
}

func TestSpeakerVerbatimSkipsTruncation(t *testing.T) {
	synth := &fakeSynth{}
	s, m := newTestSpeaker(synth)

	words := make([]string, 20)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	full := strings.Join(words, " ")
	m.Announce(Announcement{Text: full, Verbatim: true})
	s.speakNext(context.Background())

	if len(synth.spoken) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(synth.spoken))
	}
	if synth.spoken[0] != full {
		t.Errorf("verbatim announcement must not be truncated, got %q", synth.spoken[0])
	}
}

func TestSpeakerSkipsRepeatedText(t *testing.T) {
	synth := &fakeSynth{}
	s, m := newTestSpeaker(synth)
	ctx := context.Background()

	m.Announce(Announcement{Text: "a red car"})
	s.speakNext(ctx)
	m.Announce(Announcement{Text: "a red car"})
	s.speakNext(ctx)

	if len(synth.spoken) != 1 {
		t.Errorf("repeated text must be spoken once, got %d utterances", len(synth.spoken))
	}
}

func TestSpeakerSurvivesSynthesisFailure(t *testing.T) {
	synth := &fakeSynth{fail: 1}
	s, m := newTestSpeaker(synth)
	ctx := context.Background()

	m.Announce(Announcement{Text: "a red car"})
	s.speakNext(ctx) // fails, must not record as spoken

	m.Announce(Announcement{Text: "a red car"})
	s.speakNext(ctx)

	if len(synth.spoken) != 1 {
		t.Fatalf("expected retry to speak after failure, got %d utterances", len(synth.spoken))
	}
	if synth.spoken[0] != "a red car" {
		t.Errorf("expected %q, got %q", "a red car", synth.spoken[0])
	}
}

func TestTruncateWords(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"one two three", 5, "one two three"},
		{"one two three", 2, "one two"},
		{"", 3, ""},
		{"single", 1, "single"},
	}
	for _, c := range cases {
		if got := TruncateWords(c.in, c.max); got != c.want {
			t.Errorf("TruncateWords(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}
