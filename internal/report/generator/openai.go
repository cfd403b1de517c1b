// Package generator adapts an OpenAI-compatible chat completion endpoint to
// the report token stream.
package generator

import (
	"context"
	"errors"
	"io"

	"ethicsaudit/internal/platform/config"
	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/ports"
	dErrors "ethicsaudit/pkg/domain-errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI streams completions from the configured model.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

// New builds a generator from cfg. BaseURL points it at any compatible
// server.
func New(cfg config.LLMConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (g *OpenAI) Stream(ctx context.Context, prompt models.Prompt) (ports.TokenStream, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeGenerationBackend, "failed to start generation")
	}
	return &tokenStream{stream: stream}, nil
}

type tokenStream struct {
	stream *openai.ChatCompletionStream
}

// Recv skips chunks without content, such as the role preamble and the
// finish chunk.
func (t *tokenStream) Recv() (string, error) {
	for {
		resp, err := t.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeGenerationBackend, "generation stream failed")
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (t *tokenStream) Close() error {
	t.stream.Close()
	return nil
}
