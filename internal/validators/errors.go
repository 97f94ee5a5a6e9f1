// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrInvalidField    = errors.New("invalid field")

	ErrInvalidLogin      = errors.New("login is required and must be at most 64 characters")
	ErrInvalidPassword   = errors.New("password is required and must be at most 72 bytes")
	ErrEmptyRoles        = errors.New("at least one role is required")
	ErrInvalidName       = errors.New("item name is required and must be at most 100 characters")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidExpiryDate = errors.New("expiry date must be a calendar date in YYYY-MM-DD format")
	ErrInvalidLocation   = errors.New("location is required and must be at most 100 characters")
	ErrInvalidCategory   = errors.New("category must be one of Restaurant, Grocer, Supermarket")
	ErrInvalidProofRef   = errors.New("proof reference is required and must be at most 512 characters")
)
