// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/store"
	"github.com/MKhiriev/food-rescue/internal/validators"
	"github.com/MKhiriev/food-rescue/models"
)

type Services struct {
	AuthService      AuthService
	InventoryService InventoryService
	LifecycleService LifecycleService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, notifier Notifier, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewRequestValidator()

	appInfoService, err := NewAppInfoService(cfg, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, validator, cfg, logger),
		InventoryService: NewInventoryService(storages.ItemRepository, validator, logger),
		LifecycleService: NewLifecycleService(storages.ItemRepository, storages.ClaimRepository, storages.ProofFileStorage, notifier, validator, logger),
		AppInfoService:   appInfoService,
	}, nil
}
