// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client. It is used for outbound calls such as
// webhook notifications.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with JSON defaults.
// A positive timeout bounds every request made through it.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "food-rescue-notifier")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
