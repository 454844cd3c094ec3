package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/vision"
	"google.golang.org/api/option"
)

// GeminiDescriber captions frames with a Gemini multimodal model.
type GeminiDescriber struct {
	client *genai.Client
	model  string
	prompt string
}

func NewGemini(cfg config.DescriberConfig) (*GeminiDescriber, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := cfg.Gemini.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiDescriber{
		client: client,
		model:  model,
		prompt: cfg.Prompt,
	}, nil
}

func (g *GeminiDescriber) Describe(ctx context.Context, f vision.Frame) (string, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", f.JPEG),
		genai.Text(g.prompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var caption strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				caption.WriteString(string(text))
			}
		}
		break
	}
	return strings.TrimSpace(caption.String()), nil
}

func (g *GeminiDescriber) Close() error {
	return g.client.Close()
}
