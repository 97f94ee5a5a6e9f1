// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// The token from the "Authorization" header is validated via
// [service.AuthService.ParseToken] and the resulting principal is stored in
// the request context with [utils.WithPrincipal]. Requests without a header,
// with a malformed header or with an invalid or expired token get 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, fmt.Errorf("authentication failed: %w", err), "*Handler.auth")
			return
		}

		ctx = utils.WithPrincipal(ctx, token.Principal())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
