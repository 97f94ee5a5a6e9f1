// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/food-rescue/models"
)

// AuthService is the identity store: registration, authentication and
// session tokens.
type AuthService interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	// Authenticate returns the principal for a login/password pair. Unknown
	// logins and wrong passwords both yield [ErrInvalidCredentials].
	Authenticate(ctx context.Context, login, password string) (models.Principal, error)
	RotateCredential(ctx context.Context, principal models.Principal, rotation models.CredentialRotation) error

	CreateToken(ctx context.Context, principal models.Principal) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// InventoryService is the inventory ledger.
type InventoryService interface {
	AddItem(ctx context.Context, principal models.Principal, req models.AddItemRequest) (models.InventoryItem, error)
	// ListAvailable returns items without an open claim in ascending id order.
	ListAvailable(ctx context.Context) ([]models.InventoryItem, error)
	ListAll(ctx context.Context) ([]models.InventoryItem, error)
	GetItem(ctx context.Context, itemID int64) (models.InventoryItem, error)
}

// LifecycleService drives an item from donation to verified delivery.
type LifecycleService interface {
	FileClaim(ctx context.Context, principal models.Principal, itemID int64, req models.FileClaimRequest) (models.Claim, error)
	SubmitProof(ctx context.Context, principal models.Principal, claimID int64, req models.SubmitProofRequest) (models.Claim, error)
	// UploadProof stores a proof document and submits its storage key.
	UploadProof(ctx context.Context, principal models.Principal, claimID int64, mimeType string, r io.Reader) (models.Claim, error)
	OpenProof(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	ListClaimsForItem(ctx context.Context, itemID int64) ([]models.Claim, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionInfo
}

// Notifier receives claim events. Notify must not block.
type Notifier interface {
	Notify(ctx context.Context, event models.ClaimEvent)
}
