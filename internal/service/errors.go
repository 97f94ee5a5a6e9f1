// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid login or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrRoleNotGranted = errors.New("role required for this operation is not granted")
	ErrNotClaimOwner  = errors.New("claim belongs to another volunteer")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
