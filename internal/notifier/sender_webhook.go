// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/models"
)

// webhookPayload is the JSON body posted for every event.
type webhookPayload struct {
	models.ClaimEvent
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type webhookSender struct {
	url    string
	client *utils.HTTPClient
}

// NewWebhookSender posts events to url as JSON. Any non-2xx answer is a
// failed delivery.
func NewWebhookSender(url string, timeout time.Duration) Sender {
	return &webhookSender{
		url:    url,
		client: utils.NewHTTPClient(timeout),
	}
}

func (s *webhookSender) Send(ctx context.Context, event models.ClaimEvent) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			ClaimEvent: event,
			Subject:    event.Subject(),
			Text:       event.Text(),
		}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingWebhook, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
	}
	return nil
}
