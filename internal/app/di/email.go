package di

import (
	"context"
	"fmt"
	"log/slog"

	leadsusecase "leadfinder/internal/feature/leads/usecase"
	"leadfinder/internal/platform/email/ses"
)

// NewEmailSender creates an SES-backed email sender from environment
// configuration. Returns nil when SES is not configured; lead qualification
// still works, only delivery is disabled.
func NewEmailSender(ctx context.Context) (leadsusecase.EmailSender, error) {
	cfg := ses.LoadConfig()
	if !cfg.Enabled() {
		slog.Warn("SESが未構成のためメール配信を無効化します")
		return nil, nil
	}
	sender, err := ses.NewSender(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
	}
	return sender, nil
}
