// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// ClaimEvent is emitted to the notifier after a claim has been filed.
type ClaimEvent struct {
	ClaimID       int64  `json:"claim_id"`
	ItemID        int64  `json:"item_id"`
	ItemName      string `json:"item_name"`
	VolunteerName string `json:"volunteer_name"`
	TraceID       string `json:"trace_id,omitempty"`
}

// Subject returns the notification subject line.
func (e ClaimEvent) Subject() string {
	return "Food Rescue Alert"
}

// Text returns the human readable notification body.
func (e ClaimEvent) Text() string {
	return fmt.Sprintf("Volunteer %s signed up to rescue %s!", e.VolunteerName, e.ItemName)
}
