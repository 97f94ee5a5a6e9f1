// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/food-rescue/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	// A taken login yields [ErrLoginAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// ItemRepository is the inventory ledger.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	GetItem(ctx context.Context, itemID int64) (models.InventoryItem, error)
	// ListItems returns items ordered by ascending id.
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.InventoryItem, error)
}

// ClaimRepository is the claim tracker.
type ClaimRepository interface {
	// CreateClaim atomically checks that the item exists and inserts an open
	// claim. Yields [ErrItemNotFound] or [ErrItemAlreadyClaimed].
	CreateClaim(ctx context.Context, claim models.Claim) (models.Claim, error)
	GetClaim(ctx context.Context, claimID int64) (models.Claim, error)
	// MarkDelivered moves an open claim to delivered and stores proofRef.
	// Yields [ErrClaimNotFound] or [ErrClaimNotOpen].
	MarkDelivered(ctx context.Context, claimID int64, proofRef string) (models.Claim, error)
	// ListClaimsByItem returns claims of an item ordered by ascending id.
	ListClaimsByItem(ctx context.Context, itemID int64) ([]models.Claim, error)
}

// ProofFileStorage keeps uploaded delivery proof documents.
type ProofFileStorage interface {
	Save(ctx context.Context, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}
