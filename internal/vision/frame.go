package vision

import "time"

// Frame is a single captured camera image, already JPEG-encoded. The capture
// loop allocates a fresh buffer per frame, so a Frame can be handed between
// pipeline stages without copying.
type Frame struct {
	JPEG       []byte
	Seq        int64
	CapturedAt time.Time
}

// TextObservation is one recognized text region from the OCR capability.
// Position is the top-left corner of the bounding region and is only used
// for reading-order sorting.
type TextObservation struct {
	Text       string
	Confidence float64
	X          int
	Y          int
}
