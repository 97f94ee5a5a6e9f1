// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"

	"github.com/MKhiriev/food-rescue/models"
)

// Sender performs a single delivery attempt.
type Sender interface {
	Send(ctx context.Context, event models.ClaimEvent) error
}
