// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"fmt"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/models"
)

// NewSender returns the [Sender] for cfg.Provider. An empty provider selects
// the log sender.
func NewSender(cfg config.Notifier, log *logger.Logger) (Sender, error) {
	switch cfg.Provider {
	case "", config.ProviderLog:
		return NewLogSender(log), nil
	case config.ProviderSMTP:
		return NewSMTPSender(cfg.SMTP), nil
	case config.ProviderWebhook:
		return NewWebhookSender(cfg.WebhookURL, cfg.SendTimeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// logSender writes notifications to the log. It is the default provider.
type logSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) Sender {
	return &logSender{logger: log}
}

func (s *logSender) Send(_ context.Context, event models.ClaimEvent) error {
	s.logger.Info().
		Int64("claim_id", event.ClaimID).
		Int64("item_id", event.ItemID).
		Str("trace_id", event.TraceID).
		Str("subject", event.Subject()).
		Msg(event.Text())
	return nil
}
