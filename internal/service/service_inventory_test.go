// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/mock"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
)

var (
	donor     = models.Principal{UserID: 1, Login: "bakery", Roles: models.Roles{Donor: true}}
	volunteer = models.Principal{UserID: 2, Login: "alice", Roles: models.Roles{Volunteer: true}}
)

func newTestInventorySvc(t *testing.T) (InventoryService, *mock.MockItemRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	return NewInventoryService(items, validators.NewRequestValidator(), logger.Nop()), items
}

func validAddItemRequest() models.AddItemRequest {
	return models.AddItemRequest{
		Name:       "Bread",
		Quantity:   10,
		ExpiryDate: "2025-03-01",
		Location:   "Main St Bakery",
		Category:   models.CategoryRestaurant,
	}
}

func TestInventoryService_AddItem_Success(t *testing.T) {
	svc, items := newTestInventorySvc(t)

	items.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.InventoryItem) (models.InventoryItem, error) {
			assert.Equal(t, donor.UserID, item.DonorID)
			assert.Equal(t, "Bread", item.Name)
			assert.Equal(t, 10, item.Quantity)
			assert.Equal(t, models.NewDate(2025, time.March, 1), item.ExpiryDate)
			assert.Equal(t, models.CategoryRestaurant, item.Category)
			item.ItemID = 1
			return item, nil
		},
	)

	item, err := svc.AddItem(context.Background(), donor, validAddItemRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ItemID)
}

func TestInventoryService_AddItem_RequiresDonorRole(t *testing.T) {
	svc, _ := newTestInventorySvc(t)

	_, err := svc.AddItem(context.Background(), volunteer, validAddItemRequest())
	assert.ErrorIs(t, err, ErrRoleNotGranted)
}

func TestInventoryService_AddItem_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.AddItemRequest)
		wantErr error
	}{
		{"zero quantity", func(r *models.AddItemRequest) { r.Quantity = 0 }, validators.ErrInvalidQuantity},
		{"negative quantity", func(r *models.AddItemRequest) { r.Quantity = -3 }, validators.ErrInvalidQuantity},
		{"impossible date", func(r *models.AddItemRequest) { r.ExpiryDate = "2025-02-30" }, validators.ErrInvalidExpiryDate},
		{"wrong date format", func(r *models.AddItemRequest) { r.ExpiryDate = "03/01/2025" }, validators.ErrInvalidExpiryDate},
		{"empty name", func(r *models.AddItemRequest) { r.Name = "" }, validators.ErrInvalidName},
		{"blank location", func(r *models.AddItemRequest) { r.Location = "  " }, validators.ErrInvalidLocation},
		{"unknown category", func(r *models.AddItemRequest) { r.Category = "Farm" }, validators.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestInventorySvc(t) // nothing may be persisted

			req := validAddItemRequest()
			tt.mutate(&req)

			_, err := svc.AddItem(context.Background(), donor, req)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInventoryService_ListAvailable_FiltersOpenClaims(t *testing.T) {
	svc, items := newTestInventorySvc(t)

	want := []models.InventoryItem{{ItemID: 1, Name: "Bread"}, {ItemID: 3, Name: "Milk"}}
	items.EXPECT().ListItems(gomock.Any(), models.ItemFilter{OnlyAvailable: true}).Return(want, nil).Times(2)

	first, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	second, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestInventoryService_ListAll(t *testing.T) {
	svc, items := newTestInventorySvc(t)

	items.EXPECT().ListItems(gomock.Any(), models.ItemFilter{}).Return([]models.InventoryItem{{ItemID: 1, Claimed: true}}, nil)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Claimed)
}

func TestInventoryService_GetItem_NotFound(t *testing.T) {
	svc, items := newTestInventorySvc(t)

	items.EXPECT().GetItem(gomock.Any(), int64(42)).Return(models.InventoryItem{}, store.ErrItemNotFound)

	_, err := svc.GetItem(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}
