// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/utils"
	"github.com/MKhiriev/food-rescue/models"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.register")
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser.Principal())
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	if _, err = utils.WriteJSON(w, registeredUser, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("error writing response")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.login")
		return
	}

	principal, err := h.services.AuthService.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, principal)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	log.Debug().Int64("user_id", principal.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	if _, err = utils.WriteJSON(w, principal, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("error writing response")
	}
}

func (h *Handler) rotatePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingPrincipal, "*Handler.rotatePassword")
		return
	}

	var rotation models.CredentialRotation
	if err := json.NewDecoder(r.Body).Decode(&rotation); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.rotatePassword")
		return
	}

	if err := h.services.AuthService.RotateCredential(r.Context(), principal, rotation); err != nil {
		writeError(w, r, err, "*Handler.rotatePassword")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", principal.UserID).Msg("password rotated")
	w.WriteHeader(http.StatusNoContent)
}
