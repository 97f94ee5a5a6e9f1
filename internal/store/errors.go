// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registration hits the unique
	// constraint on users.login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound is returned when no inventory item has the given id.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyClaimed is returned when an open claim already exists for
	// the item. It is produced by the partial unique index on claims.
	ErrItemAlreadyClaimed = errors.New("item already claimed")

	// ErrClaimNotFound is returned when no claim has the given id.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrClaimNotOpen is returned when a transition is attempted on a claim
	// that is already delivered or cancelled.
	ErrClaimNotOpen = errors.New("claim is not open")

	// ErrProofNotFound is returned when a stored proof file does not exist.
	ErrProofNotFound = errors.New("proof not found")

	// ErrInvalidProofKey is returned for storage keys that escape the
	// proof directory.
	ErrInvalidProofKey = errors.New("invalid proof key")

	// ErrUnsupportedProofType is returned when a proof document is not a
	// PNG, JPEG, WebP or PDF file.
	ErrUnsupportedProofType = errors.New("unsupported proof type")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnknownDriver is returned for a database driver other than
	// postgres or sqlite.
	ErrUnknownDriver = errors.New("unknown database driver")
)
