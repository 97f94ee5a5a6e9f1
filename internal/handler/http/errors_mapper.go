// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/service"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:       http.StatusBadRequest,
	ErrInvalidPathID:     http.StatusBadRequest,
	ErrInvalidQueryParam: http.StatusBadRequest,
	ErrMissingProofFile:  http.StatusBadRequest,
	ErrMissingPrincipal:  http.StatusUnauthorized,
	ErrProofTooLarge:     http.StatusRequestEntityTooLarge,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrRoleNotGranted:          http.StatusForbidden,
	service.ErrNotClaimOwner:           http.StatusForbidden,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrItemAlreadyClaimed: http.StatusConflict,
	store.ErrClaimNotOpen:       http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrItemNotFound:       http.StatusNotFound,
	store.ErrClaimNotFound:      http.StatusNotFound,
	store.ErrProofNotFound:      http.StatusNotFound,
	store.ErrInvalidProofKey:    http.StatusNotFound,

	store.ErrUnsupportedProofType: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status and writes it as a JSON error body.
// Details of server-side failures are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
