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

// listItems returns unclaimed items, or every item when ?all=true.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	all, err := boolQuery(r, "all")
	if err != nil {
		writeError(w, r, err, "*Handler.listItems")
		return
	}

	var items []models.InventoryItem
	if all {
		items, err = h.services.InventoryService.ListAll(r.Context())
	} else {
		items, err = h.services.InventoryService.ListAvailable(r.Context())
	}
	if err != nil {
		writeError(w, r, err, "*Handler.listItems")
		return
	}

	if items == nil {
		items = []models.InventoryItem{}
	}
	if _, err = utils.WriteJSON(w, items, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listItems").Msg("error writing response")
	}
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingPrincipal, "*Handler.addItem")
		return
	}

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "*Handler.addItem")
		return
	}

	item, err := h.services.InventoryService.AddItem(r.Context(), principal, req)
	if err != nil {
		writeError(w, r, err, "*Handler.addItem")
		return
	}

	if _, err = utils.WriteJSON(w, item, http.StatusCreated); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.addItem").Msg("error writing response")
	}
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, r, err, "*Handler.getItem")
		return
	}

	item, err := h.services.InventoryService.GetItem(r.Context(), itemID)
	if err != nil {
		writeError(w, r, err, "*Handler.getItem")
		return
	}

	if _, err = utils.WriteJSON(w, item, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getItem").Msg("error writing response")
	}
}
