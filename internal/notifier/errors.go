// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import "errors"

var (
	ErrUnknownProvider  = errors.New("unknown notification provider")
	ErrUnexpectedStatus = errors.New("webhook answered with unexpected status")
	ErrSendingMail      = errors.New("error sending notification mail")
	ErrSendingWebhook   = errors.New("error calling notification webhook")
)
