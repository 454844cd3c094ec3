package vision

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "STOP AHEAD", "STOP AHEAD"},
		{"strips noise chars", "EXIT @#$% HERE", "EXIT HERE"},
		{"keeps basic punctuation", "Wait, really?! Don't-stop.", "Wait, really?! Don't-stop."},
		{"collapses whitespace", "ONE   TWO \t THREE", "ONE TWO THREE"},
		{"drops single char fragments", "x STOP y", "STOP"},
		{"keeps a and I", "a cat and I left", "a cat and I left"},
		{"keeps bare digits", "exit 5 north", "exit 5 north"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CleanText(c.in); got != c.want {
				t.Errorf("CleanText(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"STOP",
		"EXIT @#$% HERE",
		"  spaced   out  text  ",
		"a 1 b c? x! I",
		"speed limit 45",
	}
	for _, in := range inputs {
		once := CleanText(in)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestComposeTextReadingOrder(t *testing.T) {
	obs := []TextObservation{
		{Text: "WORLD", Confidence: 0.9, X: 200, Y: 10},
		{Text: "HELLO", Confidence: 0.9, X: 10, Y: 10},
		{Text: "BELOW", Confidence: 0.9, X: 10, Y: 100},
	}
	got := ComposeText(obs, 0.6, 3)
	if got != "HELLO WORLD BELOW" {
		t.Errorf("expected top-to-bottom left-to-right order, got %q", got)
	}
}

func TestComposeTextFilters(t *testing.T) {
	obs := []TextObservation{
		{Text: "KEEP", Confidence: 0.9},
		{Text: "lowconf", Confidence: 0.3},
		{Text: "ab", Confidence: 0.9}, // below min length
	}
	if got := ComposeText(obs, 0.6, 3); got != "KEEP" {
		t.Errorf("expected %q, got %q", "KEEP", got)
	}
}

func TestComposeTextEmptyResults(t *testing.T) {
	if got := ComposeText(nil, 0.6, 3); got != "" {
		t.Errorf("nil observations should compose to empty, got %q", got)
	}
	obs := []TextObservation{{Text: "zz", Confidence: 0.9}}
	if got := ComposeText(obs, 0.6, 3); got != "" {
		t.Errorf("nothing surviving filters should compose to empty, got %q", got)
	}
}

func TestComposeTextCleansResult(t *testing.T) {
	obs := []TextObservation{
		{Text: "EXIT###", Confidence: 0.9},
		{Text: "NOW!!", Confidence: 0.9, X: 50},
	}
	if got := ComposeText(obs, 0.6, 3); got != "EXIT NOW!!" {
		t.Errorf("expected cleaned concatenation, got %q", got)
	}
}
