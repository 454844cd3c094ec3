package vision

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Keep letters, digits, underscore, whitespace and basic punctuation.
	noiseRE      = regexp.MustCompile(`[^\w\s.,!?'\-]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CleanText normalizes raw OCR output: strips noise characters, collapses
// whitespace runs and drops single-character fragments unless they are "a",
// "i" or a bare digit. CleanText is idempotent.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = noiseRE.ReplaceAllString(text, "")
	text = whitespaceRE.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) > 1 || keepSingle(w) {
			kept = append(kept, w)
		}
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}

func keepSingle(w string) bool {
	switch strings.ToLower(w) {
	case "a", "i":
		return true
	}
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsDigit(r)
}

// ComposeText turns raw OCR observations into a single cleaned string in
// natural reading order. Observations below the confidence threshold or
// shorter than minLen are discarded; the survivors are sorted top-to-bottom,
// then left-to-right, joined with spaces and normalized. Returns "" when
// nothing meaningful survives.
func ComposeText(obs []TextObservation, minConfidence float64, minLen int) string {
	if len(obs) == 0 {
		return ""
	}

	sorted := make([]TextObservation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	parts := make([]string, 0, len(sorted))
	for _, o := range sorted {
		t := strings.TrimSpace(o.Text)
		if o.Confidence > minConfidence && utf8.RuneCountInString(t) >= minLen {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	full := CleanText(strings.Join(parts, " "))
	if utf8.RuneCountInString(full) < minLen {
		return ""
	}
	return full
}
