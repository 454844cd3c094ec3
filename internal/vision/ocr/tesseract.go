package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/vision"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

// TesseractDetector recognizes text regions in frames through a shared
// gosseract client. Tesseract clients are not safe for concurrent use, so
// calls are serialized; the detection worker is the only caller in practice.
type TesseractDetector struct {
	mu     sync.Mutex
	client *gosseract.Client
	logger *Logger.Logger
}

func NewTesseract(cfg config.OCRConfig, logger *Logger.Logger) (*TesseractDetector, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.Languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr languages %v: %w", cfg.Languages, err)
	}
	// Automatic page segmentation groups nearby lines into paragraphs, which
	// keeps multi-line signs together as one observation.
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr segmentation mode: %w", err)
	}
	return &TesseractDetector{client: client, logger: logger}, nil
}

// DetectText returns the recognized text regions of a frame. A failed
// recognition pass degrades to an empty result; per-frame OCR errors never
// propagate past this boundary.
func (d *TesseractDetector) DetectText(ctx context.Context, f vision.Frame) []vision.TextObservation {
	if ctx.Err() != nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.client.SetImageFromBytes(f.JPEG); err != nil {
		d.logger.Debugf("ocr: set image for frame %d: %v", f.Seq, err)
		return nil
	}
	boxes, err := d.client.GetBoundingBoxes(gosseract.RIL_PARA)
	if err != nil {
		d.logger.Debugf("ocr: recognize frame %d: %v", f.Seq, err)
		return nil
	}

	obs := make([]vision.TextObservation, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		obs = append(obs, vision.TextObservation{
			Text:       text,
			Confidence: float64(box.Confidence) / 100.0,
			X:          box.Box.Min.X,
			Y:          box.Box.Min.Y,
		})
	}
	return obs
}

func (d *TesseractDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client.Close()
}
