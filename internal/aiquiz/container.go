package aiquiz

import (
	"context"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
	Service Service
}

func NewAIQuizContainer(ctx context.Context) *AIQuizContainer {
	provider, err := NewGeminiProvider(ctx, config.Conf.GetString("gemini_model"))
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("AI question drafts disabled")
		provider = nil
	}
	service := NewService(provider)

	return &AIQuizContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
