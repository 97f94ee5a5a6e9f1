// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the REST router.
//
// Every request passes panic recovery, trace id assignment, access logging,
// the request timeout and gzip negotiation. Routes outside the public group
// additionally require a valid bearer token.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/version/build", h.getVersionInfo)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/user/password", h.rotatePassword)

		r.Get("/api/items", h.listItems)
		r.Post("/api/items", h.addItem)
		r.Get("/api/items/{itemID}", h.getItem)
		r.Get("/api/items/{itemID}/claims", h.listItemClaims)
		r.Post("/api/items/{itemID}/claims", h.fileClaim)

		r.Post("/api/claims/{claimID}/proof", h.submitProof)
		r.Get("/api/claims/proof/{key}", h.downloadProof)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
