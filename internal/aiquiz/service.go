package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnavailable = errors.New("question generator not configured")
	ErrNoDrafts    = errors.New("model returned no usable questions")
)

type Service interface {
	GenerateDrafts(ctx context.Context, req DraftRequest) ([]Draft, error)
}

type service struct {
	provider Provider
}

// NewService accepts a nil provider; every call then fails with
// ErrUnavailable.
func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateDrafts(ctx context.Context, req DraftRequest) ([]Draft, error) {
	log := config.WithContext(ctx)
	if s.provider == nil {
		return nil, ErrUnavailable
	}

	req = normalize(req)
	raw, err := s.provider.Generate(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	drafts, err := parseDrafts(raw)
	if err != nil {
		log.WithError(err).Error("Failed to decode model reply")
		return nil, err
	}

	usable := make([]Draft, 0, len(drafts))
	for _, d := range drafts {
		if valid(d) {
			if d.Points <= 0 {
				d.Points = 1
			}
			usable = append(usable, d)
		}
	}
	if len(usable) > req.Count {
		usable = usable[:req.Count]
	}

	log.WithFields(logrus.Fields{
		"topic":     req.Topic,
		"requested": req.Count,
		"returned":  len(drafts),
		"usable":    len(usable),
	}).Info("Question drafts generated")

	if len(usable) == 0 {
		return nil, ErrNoDrafts
	}
	return usable, nil
}

// parseDrafts tolerates markdown fences around the JSON array.
func parseDrafts(raw string) ([]Draft, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var drafts []Draft
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}

func valid(d Draft) bool {
	if strings.TrimSpace(d.Text) == "" || len(d.Options) != optionsPerDraft {
		return false
	}
	for _, o := range d.Options {
		if strings.TrimSpace(o) == "" {
			return false
		}
	}
	return d.CorrectAnswer >= 0 && d.CorrectAnswer < len(d.Options)
}
