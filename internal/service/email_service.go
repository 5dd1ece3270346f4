package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// ResultSummary - итог игры для письма игроку
type ResultSummary struct {
	SessionID      uint
	TotalScore     int
	CorrectAnswers int
	WrongAnswers   int
	Unanswered     int
	Rank           int64
	TotalPlayers   int64
}

// ResultMailer отправляет игроку письмо с итогами игры
type ResultMailer interface {
	SendResultSummary(ctx context.Context, player *entity.Player, summary ResultSummary) error
}

// NoopResultMailer используется, когда почта не настроена
type NoopResultMailer struct{}

func (m *NoopResultMailer) SendResultSummary(ctx context.Context, player *entity.Player, summary ResultSummary) error {
	log.Printf("[ResultMailer] noop: итоги игры #%d не отправлены", summary.SessionID)
	return nil
}

// ResendResultMailer отправляет письма через Resend REST API
type ResendResultMailer struct {
	from   string
	client *resend.Client
}

func NewResendResultMailer(apiKey, from string) (*ResendResultMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendResultMailer{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// NewResultMailer возвращает Resend-реализацию, если ключ задан, иначе noop
func NewResultMailer(apiKey, from string) ResultMailer {
	if strings.TrimSpace(apiKey) == "" {
		return &NoopResultMailer{}
	}
	mailer, err := NewResendResultMailer(apiKey, from)
	if err != nil {
		log.Printf("[ResultMailer] Почта отключена: %v", err)
		return &NoopResultMailer{}
	}
	return mailer
}

func (m *ResendResultMailer) SendResultSummary(ctx context.Context, player *entity.Player, summary ResultSummary) error {
	if player == nil || player.Email == "" {
		return fmt.Errorf("player email is required")
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{player.Email},
		Subject: "Your Green/Red Quiz results",
		Text:    summaryText(player, summary),
		Html:    summaryHTML(player, summary),
	}
	options := &resend.SendEmailOptions{
		IdempotencyKey: fmt.Sprintf("game-result-%d", summary.SessionID),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := m.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func summaryText(player *entity.Player, s ResultSummary) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYou scored %d points (%d correct, %d wrong, %d unanswered).\nYou are ranked #%d of %d players.\n",
		player.FirstName, s.TotalScore, s.CorrectAnswers, s.WrongAnswers, s.Unanswered, s.Rank, s.TotalPlayers,
	)
}

func summaryHTML(player *entity.Player, s ResultSummary) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>You scored <strong>%d</strong> points (%d correct, %d wrong, %d unanswered).</p><p>You are ranked <strong>#%d</strong> of %d players.</p>",
		html.EscapeString(player.FirstName), s.TotalScore, s.CorrectAnswers, s.WrongAnswers, s.Unanswered, s.Rank, s.TotalPlayers,
	)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
