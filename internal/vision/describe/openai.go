package describe

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/vision"
)

// OpenAIDescriber captions frames with an OpenAI vision-capable chat model.
type OpenAIDescriber struct {
	client openai.Client
	model  string
	prompt string
}

func NewOpenAI(cfg config.DescriberConfig) (*OpenAIDescriber, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai API key is not configured")
	}
	model := cfg.OpenAI.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIDescriber{
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey)),
		model:  model,
		prompt: cfg.Prompt,
	}, nil
}

func (o *OpenAIDescriber) Describe(ctx context.Context, f vision.Frame) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(f.JPEG)

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(o.prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
