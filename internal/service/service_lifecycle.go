// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
)

// lifecycleService orchestrates claims on top of the inventory ledger and the
// claim tracker. The one-open-claim rule is enforced by the claim repository;
// this layer adds role and ownership checks and emits claim events.
type lifecycleService struct {
	itemRepository  store.ItemRepository
	claimRepository store.ClaimRepository
	proofs          store.ProofFileStorage
	notifier        Notifier
	validator       validators.Validator

	logger *logger.Logger
}

func NewLifecycleService(
	itemRepository store.ItemRepository,
	claimRepository store.ClaimRepository,
	proofs store.ProofFileStorage,
	notifier Notifier,
	validator validators.Validator,
	logger *logger.Logger,
) LifecycleService {
	return &lifecycleService{
		itemRepository:  itemRepository,
		claimRepository: claimRepository,
		proofs:          proofs,
		notifier:        notifier,
		validator:       validator,
		logger:          logger,
	}
}

// FileClaim opens a claim on itemID for the volunteer and notifies about it.
//
// Returns the new claim or:
//   - ErrRoleNotGranted without the volunteer role.
//   - store.ErrItemNotFound for an unknown item.
//   - store.ErrItemAlreadyClaimed when another claim is open.
func (s *lifecycleService) FileClaim(ctx context.Context, principal models.Principal, itemID int64, req models.FileClaimRequest) (models.Claim, error) {
	log := logger.FromContext(ctx).With().
		Int64("item_id", itemID).
		Int64("volunteer_id", principal.UserID).
		Logger()

	if !principal.Roles.Volunteer {
		return models.Claim{}, ErrRoleNotGranted
	}

	item, err := s.itemRepository.GetItem(ctx, itemID)
	if err != nil {
		return models.Claim{}, fmt.Errorf("filing claim failed: %w", err)
	}

	claim := models.Claim{
		ItemID:      itemID,
		VolunteerID: principal.UserID,
	}
	if req.TimeCollected != nil {
		claim.TimeCollected = req.TimeCollected.UTC()
	}

	created, err := s.claimRepository.CreateClaim(ctx, claim)
	if err != nil {
		log.Debug().Err(err).Msg("claim rejected")
		return models.Claim{}, fmt.Errorf("filing claim failed: %w", err)
	}
	log.Info().Int64("claim_id", created.ClaimID).Msg("claim filed")

	s.notifier.Notify(ctx, models.ClaimEvent{
		ClaimID:       created.ClaimID,
		ItemID:        item.ItemID,
		ItemName:      item.Name,
		VolunteerName: principal.Login,
	})

	return created, nil
}

// SubmitProof marks the volunteer's open claim as delivered.
//
// Ownership is checked before state and payload: a non-owner always gets
// ErrNotClaimOwner, a claim that is no longer open yields
// store.ErrClaimNotOpen, and only then is the proof reference validated.
func (s *lifecycleService) SubmitProof(ctx context.Context, principal models.Principal, claimID int64, req models.SubmitProofRequest) (models.Claim, error) {
	if !principal.Roles.Volunteer {
		return models.Claim{}, ErrRoleNotGranted
	}

	if err := s.checkOpenOwnedClaim(ctx, principal, claimID); err != nil {
		return models.Claim{}, err
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Claim{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.markDelivered(ctx, claimID, req.ProofRef)
}

// UploadProof stores the document read from r and submits its storage key.
// The stored document is removed again when the claim cannot be delivered.
// Documents of an unsupported type are rejected as invalid data.
func (s *lifecycleService) UploadProof(ctx context.Context, principal models.Principal, claimID int64, mimeType string, r io.Reader) (models.Claim, error) {
	log := logger.FromContext(ctx)

	if !principal.Roles.Volunteer {
		return models.Claim{}, ErrRoleNotGranted
	}

	if err := s.checkOpenOwnedClaim(ctx, principal, claimID); err != nil {
		return models.Claim{}, err
	}

	key, err := s.proofs.Save(ctx, mimeType, r)
	if errors.Is(err, store.ErrUnsupportedProofType) {
		return models.Claim{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		log.Err(err).Int64("claim_id", claimID).Msg("storing proof failed")
		return models.Claim{}, fmt.Errorf("storing proof failed: %w", err)
	}

	claim, err := s.markDelivered(ctx, claimID, key)
	if err != nil {
		if delErr := s.proofs.Delete(ctx, key); delErr != nil {
			log.Err(delErr).Str("proof_ref", key).Msg("removing orphaned proof failed")
		}
		return models.Claim{}, err
	}

	return claim, nil
}

func (s *lifecycleService) OpenProof(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	rc, mimeType, err := s.proofs.Get(ctx, storageKey)
	if err != nil {
		return nil, "", fmt.Errorf("opening proof failed: %w", err)
	}
	return rc, mimeType, nil
}

// ListClaimsForItem returns the claim history of an existing item.
func (s *lifecycleService) ListClaimsForItem(ctx context.Context, itemID int64) ([]models.Claim, error) {
	if _, err := s.itemRepository.GetItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("listing claims failed: %w", err)
	}

	claims, err := s.claimRepository.ListClaimsByItem(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("item_id", itemID).Msg("listing claims failed")
		return nil, fmt.Errorf("listing claims failed: %w", err)
	}
	return claims, nil
}

func (s *lifecycleService) checkOpenOwnedClaim(ctx context.Context, principal models.Principal, claimID int64) error {
	claim, err := s.claimRepository.GetClaim(ctx, claimID)
	if err != nil {
		return fmt.Errorf("submitting proof failed: %w", err)
	}

	if claim.VolunteerID != principal.UserID {
		logger.FromContext(ctx).Debug().
			Int64("claim_id", claimID).
			Int64("user_id", principal.UserID).
			Msg("proof submitted by non-owner")
		return ErrNotClaimOwner
	}

	if claim.State.Terminal() {
		return fmt.Errorf("submitting proof failed: %w", store.ErrClaimNotOpen)
	}
	return nil
}

func (s *lifecycleService) markDelivered(ctx context.Context, claimID int64, proofRef string) (models.Claim, error) {
	claim, err := s.claimRepository.MarkDelivered(ctx, claimID, proofRef)
	if err != nil {
		return models.Claim{}, fmt.Errorf("submitting proof failed: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("claim_id", claim.ClaimID).
		Int64("item_id", claim.ItemID).
		Msg("claim delivered")
	return claim, nil
}
