package arbiter

// StabilityFilter confirms an OCR reading by requiring the same text across a
// fixed window of consecutive detection cycles. This suppresses false triggers
// from motion blur and partial recognitions.
type StabilityFilter struct {
	size   int
	window []string
}

func NewStabilityFilter(size int) *StabilityFilter {
	if size < 1 {
		size = 1
	}
	return &StabilityFilter{
		size:   size,
		window: make([]string, 0, size),
	}
}

// Observe appends text to the window, evicting the oldest entry beyond
// capacity. It reports the stable text only when the window is full and every
// entry equals the first non-empty entry; an all-empty window is simply "no
// stable text", not an error. Matching is strict equality — text must already
// be normalized upstream.
func (f *StabilityFilter) Observe(text string) (string, bool) {
	f.window = append(f.window, text)
	if len(f.window) > f.size {
		f.window = f.window[1:]
	}

	if len(f.window) < f.size {
		return "", false
	}
	first := f.window[0]
	if first == "" {
		return "", false
	}
	for _, t := range f.window[1:] {
		if t != first {
			return "", false
		}
	}
	return first, true
}

// Len returns the current number of buffered observations.
func (f *StabilityFilter) Len() int {
	return len(f.window)
}
