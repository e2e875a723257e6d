package aiquiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"google.golang.org/genai"
)

var ErrEmptyReply = errors.New("empty reply from model")

// Provider sends one prompt to a language model and returns its raw text.
type Provider interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GEMINI_API_KEY (or GOOGLE_API_KEY) from the
// environment.
func NewGeminiProvider(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini request failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return "", ErrEmptyReply
	}
	log.Debugf("Gemini raw reply:\n%s", raw)
	return raw, nil
}
