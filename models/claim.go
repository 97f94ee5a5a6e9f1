// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ClaimState is the lifecycle state of a [Claim].
type ClaimState string

const (
	// ClaimOpen is the state of a freshly filed claim. At most one claim per
	// item may be open at any time.
	ClaimOpen ClaimState = "open"

	// ClaimDelivered is terminal: the volunteer submitted delivery proof.
	ClaimDelivered ClaimState = "delivered"

	// ClaimCancelled is terminal and reserved for administrative action.
	ClaimCancelled ClaimState = "cancelled"
)

// Terminal reports whether no transition leaves s.
func (s ClaimState) Terminal() bool {
	return s == ClaimDelivered || s == ClaimCancelled
}

// CanTransition reports whether the claim state machine allows from -> to.
func CanTransition(from, to ClaimState) bool {
	if from != ClaimOpen {
		return false
	}
	return to == ClaimDelivered || to == ClaimCancelled
}

// Claim is a volunteer's commitment to collect and deliver one item.
type Claim struct {
	ClaimID       int64      `json:"claim_id"`
	ItemID        int64      `json:"item_id"`
	VolunteerID   int64      `json:"volunteer_id"`
	TimeCollected time.Time  `json:"time_collected"`
	ProofRef      *string    `json:"proof_ref,omitempty"`
	State         ClaimState `json:"state"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Claim model.
func (c Claim) TableName() string {
	return "claims"
}

// FileClaimRequest is the volunteer-supplied payload for a new claim.
// A nil TimeCollected means "now".
type FileClaimRequest struct {
	TimeCollected *time.Time `json:"time_collected,omitempty"`
}

// SubmitProofRequest carries an opaque reference to delivery proof, e.g. the
// storage key of an uploaded photo or an external document URL.
type SubmitProofRequest struct {
	ProofRef string `json:"proof_ref" validate:"required,max=512"`
}
