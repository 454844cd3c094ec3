package describe

import (
	"context"
	"fmt"

	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/vision"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

// Describer captions a frame with a short natural-language sentence.
// Implementations return the error for the caller to log; the pipeline treats
// any failure as an empty caption.
type Describer interface {
	Describe(ctx context.Context, f vision.Frame) (string, error)
}

// New selects and initializes the captioning provider named by config.
func New(cfg config.DescriberConfig, logger *Logger.Logger) (Describer, error) {
	logger.Infof("using %s describer", cfg.Provider)
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg)
	case "openai":
		return NewOpenAI(cfg)
	case "gemini":
		return NewGemini(cfg)
	default:
		return nil, fmt.Errorf("unknown describer provider %q", cfg.Provider)
	}
}
