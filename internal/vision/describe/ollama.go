package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/vision"
)

// OllamaDescriber captions frames with a multimodal model served by one or
// more ollama instances. The farm picks the first server that is online.
type OllamaDescriber struct {
	farm   *ollamafarm.Farm
	model  string
	prompt string
}

func NewOllama(cfg config.DescriberConfig) (*OllamaDescriber, error) {
	farm := ollamafarm.New()
	for _, u := range cfg.Ollama.URLs {
		if err := farm.RegisterURL(u, nil); err != nil {
			return nil, fmt.Errorf("register ollama server %s: %w", u, err)
		}
	}
	return &OllamaDescriber{
		farm:   farm,
		model:  cfg.Ollama.Model,
		prompt: cfg.Prompt,
	}, nil
}

func (o *OllamaDescriber) Describe(ctx context.Context, f vision.Frame) (string, error) {
	srv := o.farm.First(&ollamafarm.Where{Offline: false})
	if srv == nil {
		return "", fmt.Errorf("no ollama server online for model %s", o.model)
	}

	stream := false
	req := api.GenerateRequest{
		Model:  o.model,
		Prompt: o.prompt,
		Images: []api.ImageData{api.ImageData(f.JPEG)},
		Stream: &stream,
		Options: map[string]any{
			"num_predict": 30,
		},
	}

	var caption strings.Builder
	err := srv.Client().Generate(ctx, &req, func(resp api.GenerateResponse) error {
		caption.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(caption.String()), nil
}
