// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listItemClaims(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, err, "*Handler.listItemClaims")
		return
	}

	claims, err := h.services.LifecycleService.ListClaimsForItem(r.Context(), itemID)
	if err != nil {
		writeError(w, r, err, "*Handler.listItemClaims")
		return
	}

	if claims == nil {
		claims = []models.Claim{}
	}
	if _, err = utils.WriteJSON(w, claims, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listItemClaims").Msg("error writing response")
	}
}

// fileClaim accepts an empty body or {"time_collected": "..."}.
func (h *Handler) fileClaim(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingPrincipal, "*Handler.fileClaim")
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, err, "*Handler.fileClaim")
		return
	}

	var req models.FileClaimRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.fileClaim")
		return
	}

	claim, err := h.services.LifecycleService.FileClaim(r.Context(), principal, itemID, req)
	if err != nil {
		writeError(w, r, err, "*Handler.fileClaim")
		return
	}

	if _, err = utils.WriteJSON(w, claim, http.StatusCreated); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.fileClaim").Msg("error writing response")
	}
}

// submitProof marks a claim delivered. A multipart/form-data body carries
// the document itself in the "proof" field; any other body is read as
// {"proof_ref": "..."} referencing a document stored elsewhere.
func (h *Handler) submitProof(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingPrincipal, "*Handler.submitProof")
		return
	}

	claimID, err := pathID(r, "claimID")
	if err != nil {
		writeError(w, r, err, "*Handler.submitProof")
		return
	}

	var claim models.Claim
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		claim, err = h.uploadProof(r, principal, claimID)
	} else {
		var req models.SubmitProofRequest
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.submitProof")
			return
		}
		claim, err = h.services.LifecycleService.SubmitProof(r.Context(), principal, claimID, req)
	}
	if err != nil {
		writeError(w, r, err, "*Handler.submitProof")
		return
	}

	if _, err = utils.WriteJSON(w, claim, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.submitProof").Msg("error writing response")
	}
}

func (h *Handler) uploadProof(r *http.Request, principal models.Principal, claimID int64) (models.Claim, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxProofUploadSize)
	file, header, err := r.FormFile("proof")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return models.Claim{}, fmt.Errorf("%w: limit is %d bytes", ErrProofTooLarge, maxProofUploadSize)
		}
		return models.Claim{}, fmt.Errorf("%w: %w", ErrMissingProofFile, err)
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	return h.services.LifecycleService.UploadProof(r.Context(), principal, claimID, header.Header.Get("Content-Type"), file)
}

func (h *Handler) downloadProof(w http.ResponseWriter, r *http.Request) {
	rc, mimeType, err := h.services.LifecycleService.OpenProof(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, err, "*Handler.downloadProof")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, rc); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.downloadProof").Msg("error streaming proof")
	}
}
