package service

import (
	"context"
	"fmt"
	"strings"

	"cardmax/internal/dto"
	"cardmax/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const advisorInstruction = `You are a concise credit card rewards advisor. Given a purchase and the
card a rewards engine selected for it, explain in two or three sentences why
the card fits and mention one alternative only if it is close in value.
Never invent reward rates that are not in the input.`

// AdvisorService adds free-text advice on top of an engine recommendation
// using GigaChat. It is only constructed when an API key is configured.
type AdvisorService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewAdvisorService(cfg *config.GigaChatConfig, logger *zap.Logger) (*AdvisorService, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = advisorInstruction
	model.Temperature = 0.3

	logger.Info("Advisor enabled", zap.String("model", "GigaChat"))

	return &AdvisorService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *AdvisorService) Advise(ctx context.Context, req *dto.RecommendationRequest, rec *dto.RecommendationResponse) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: buildAdvicePrompt(req, rec)},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return strings.TrimSpace(sanitizeUTF8(resp.Choices[0].Message.Content)), nil
}

func (s *AdvisorService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

func buildAdvicePrompt(req *dto.RecommendationRequest, rec *dto.RecommendationResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Purchase: %.2f in category %s", req.Amount, rec.Category)
	if req.Description != "" {
		fmt.Fprintf(&b, " (%s)", req.Description)
	}
	if req.ForeignTransaction {
		b.WriteString(", foreign transaction")
	}
	b.WriteString(".\n")

	fmt.Fprintf(&b, "Selected card: %s by %s, value %.2f %s.\n",
		rec.Card.Name, rec.Card.Issuer, rec.RewardValue, rec.Card.RewardType)
	fmt.Fprintf(&b, "Engine explanation: %s.\n", rec.Explanation)

	if len(rec.Alternatives) > 0 {
		b.WriteString("Alternatives:\n")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(&b, "- %s: %.2f %s\n", alt.Card.Name, alt.RewardValue, alt.Card.RewardType)
		}
	}
	return b.String()
}
