package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/quiniela/internal/domain/ballot"
	"github.com/riskibarqy/quiniela/internal/domain/match"
)

type ShareInput struct {
	Ballot ballot.Ballot
	Source SourceRequest
}

type ShareResult struct {
	Message     string
	WhatsAppURL string
}

// ShareService composes the WhatsApp summary of a ballot.
type ShareService struct {
	matches *MatchLoader
	phone   string
}

func NewShareService(matches *MatchLoader, phone string) *ShareService {
	return &ShareService{matches: matches, phone: strings.TrimSpace(phone)}
}

func (s *ShareService) Compose(ctx context.Context, input ShareInput) (ShareResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShareService.Compose")
	defer span.End()

	b := input.Ballot
	b.SubmitterName = strings.TrimSpace(b.SubmitterName)
	if b.SubmitterName == "" {
		return ShareResult{}, fmt.Errorf("%w: submitter name is required", ErrInvalidInput)
	}
	if s.phone == "" {
		return ShareResult{}, fmt.Errorf("%w: whatsapp phone is not configured", ErrMisconfigured)
	}

	matches, err := s.matches.Load(ctx, input.Source)
	if err != nil {
		return ShareResult{}, fmt.Errorf("load matches: %w", err)
	}
	matches = match.FilterByRound(matches, b.RoundID)

	message := ballot.ShareMessage(b, matches)
	return ShareResult{
		Message:     message,
		WhatsAppURL: ballot.WhatsAppURL(s.phone, message),
	}, nil
}
