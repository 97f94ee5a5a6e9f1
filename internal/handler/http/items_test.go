// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/food-rescue/internal/service"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func breadItem() models.InventoryItem {
	return models.InventoryItem{
		ItemID:     1,
		DonorID:    donor.UserID,
		Name:       "Bread",
		Quantity:   20,
		ExpiryDate: models.NewDate(2025, time.March, 1),
		Location:   "Main St",
		Category:   models.CategoryRestaurant,
		CreatedAt:  time.Date(2025, time.February, 27, 10, 0, 0, 0, time.UTC),
	}
}

// ── listItems ───────────────────────────────────────────────────────────────

func TestListItems_AvailableByDefault(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items", "")
	m.authorize(req, volunteer)
	m.inventory.EXPECT().ListAvailable(gomock.Any()).Return([]models.InventoryItem{breadItem()}, nil)

	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.InventoryItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bread", got[0].Name)
	assert.Equal(t, "2025-03-01", got[0].ExpiryDate.String())
}

func TestListItems_All(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items?all=true", "")
	m.authorize(req, donor)
	claimed := breadItem()
	claimed.Claimed = true
	m.inventory.EXPECT().ListAll(gomock.Any()).Return([]models.InventoryItem{claimed}, nil)

	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"claimed":true`)
}

func TestListItems_EmptyIsArray(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items", "")
	m.authorize(req, volunteer)
	m.inventory.EXPECT().ListAvailable(gomock.Any()).Return(nil, nil)

	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListItems_BadAllParam(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items?all=maybe", "")
	m.authorize(req, volunteer)

	rr := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListItems_StorageError(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items", "")
	m.authorize(req, volunteer)
	m.inventory.EXPECT().ListAvailable(gomock.Any()).
		Return(nil, fmt.Errorf("listing items failed: %w", store.ErrScanningRows))

	rr := serve(router, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// ── addItem ─────────────────────────────────────────────────────────────────

func TestAddItem_Created(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodPost, "/api/items",
		`{"name":"Bread","quantity":20,"expiry_date":"2025-03-01","location":"Main St","category":"Restaurant"}`)
	m.authorize(req, donor)
	m.inventory.EXPECT().
		AddItem(gomock.Any(), donor, models.AddItemRequest{
			Name:       "Bread",
			Quantity:   20,
			ExpiryDate: "2025-03-01",
			Location:   "Main St",
			Category:   models.CategoryRestaurant,
		}).
		Return(breadItem(), nil)

	rr := serve(router, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got models.InventoryItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ItemID)
	assert.Equal(t, donor.UserID, got.DonorID)
}

func TestAddItem_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "volunteer cannot donate",
			serviceErr: fmt.Errorf("adding item failed: %w", service.ErrRoleNotGranted),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "invalid quantity",
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidQuantity),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			req := jsonRequest(http.MethodPost, "/api/items", `{"name":"Bread","quantity":0}`)
			m.authorize(req, volunteer)
			m.inventory.EXPECT().AddItem(gomock.Any(), volunteer, gomock.Any()).Return(models.InventoryItem{}, tt.serviceErr)

			rr := serve(router, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, decodeError(t, rr), tt.serviceErr.Error())
		})
	}
}

func TestAddItem_MalformedJSON(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodPost, "/api/items", `{"quantity":"twenty"}`)
	m.authorize(req, donor)

	rr := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ── getItem ─────────────────────────────────────────────────────────────────

func TestGetItem(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items/1", "")
	m.authorize(req, volunteer)
	m.inventory.EXPECT().GetItem(gomock.Any(), int64(1)).Return(breadItem(), nil)

	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Bread"`)
}

func TestGetItem_NotFound(t *testing.T) {
	router, m := newTestRouter(t)
	req := jsonRequest(http.MethodGet, "/api/items/99", "")
	m.authorize(req, volunteer)
	m.inventory.EXPECT().GetItem(gomock.Any(), int64(99)).
		Return(models.InventoryItem{}, fmt.Errorf("getting item failed: %w", store.ErrItemNotFound))

	rr := serve(router, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetItem_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		t.Run(id, func(t *testing.T) {
			router, m := newTestRouter(t)
			req := jsonRequest(http.MethodGet, "/api/items/"+id, "")
			m.authorize(req, volunteer)

			rr := serve(router, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
