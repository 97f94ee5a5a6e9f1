// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself, before a request
// reaches the service layer.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON       = errors.New("invalid JSON body")
	ErrInvalidPathID     = errors.New("id in path must be a positive integer")
	ErrInvalidQueryParam = errors.New("invalid query parameter")
	ErrMissingProofFile  = errors.New("multipart form must contain a `proof` file")
	ErrMissingPrincipal  = errors.New("request is not authenticated")
	ErrProofTooLarge     = errors.New("proof upload is too large")
)
