// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
)

type inventoryService struct {
	itemRepository store.ItemRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewInventoryService(itemRepository store.ItemRepository, validator validators.Validator, logger *logger.Logger) InventoryService {
	return &inventoryService{
		itemRepository: itemRepository,
		validator:      validator,
		logger:         logger,
	}
}

// AddItem registers a donation on behalf of a donor. Invalid input is
// rejected before anything is persisted.
func (s *inventoryService) AddItem(ctx context.Context, principal models.Principal, req models.AddItemRequest) (models.InventoryItem, error) {
	log := logger.FromContext(ctx)

	if !principal.Roles.Donor {
		log.Debug().Int64("user_id", principal.UserID).Msg("add item without donor role")
		return models.InventoryItem{}, ErrRoleNotGranted
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.InventoryItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	expiry, err := models.ParseDate(req.ExpiryDate)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidExpiryDate)
	}

	item, err := s.itemRepository.CreateItem(ctx, models.InventoryItem{
		DonorID:    principal.UserID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
		Location:   req.Location,
		Category:   req.Category,
	})
	if err != nil {
		log.Err(err).Int64("donor_id", principal.UserID).Msg("item creation ended with error")
		return models.InventoryItem{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	log.Info().Int64("item_id", item.ItemID).Int64("donor_id", item.DonorID).Msg("item added")
	return item, nil
}

func (s *inventoryService) ListAvailable(ctx context.Context) ([]models.InventoryItem, error) {
	return s.list(ctx, models.ItemFilter{OnlyAvailable: true})
}

func (s *inventoryService) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	return s.list(ctx, models.ItemFilter{})
}

func (s *inventoryService) list(ctx context.Context, filter models.ItemFilter) ([]models.InventoryItem, error) {
	items, err := s.itemRepository.ListItems(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Bool("only_available", filter.OnlyAvailable).Msg("listing items failed")
		return nil, fmt.Errorf("listing items failed: %w", err)
	}
	return items, nil
}

func (s *inventoryService) GetItem(ctx context.Context, itemID int64) (models.InventoryItem, error) {
	item, err := s.itemRepository.GetItem(ctx, itemID)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("getting item %d failed: %w", itemID, err)
	}
	return item, nil
}
