// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged configuration and resolves the database driver
// when it was left empty.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverFromDSN(cfg.Storage.DB.DSN)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return cfg.Notifier.validate()
}

func (n Notifier) validate() error {
	if n.QueueSize <= 0 || n.SendTimeout <= 0 {
		return ErrInvalidNotifierConfigs
	}

	switch n.Provider {
	case ProviderLog:
		return nil
	case ProviderSMTP:
		if n.SMTP.Host == "" || n.SMTP.Port <= 0 || n.SMTP.To == "" {
			return fmt.Errorf("%w: smtp host, port and recipient are required", ErrInvalidNotifierConfigs)
		}
		return nil
	case ProviderWebhook:
		if n.WebhookURL == "" {
			return fmt.Errorf("%w: webhook url is required", ErrInvalidNotifierConfigs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidNotifierConfigs, n.Provider)
	}
}

// DriverFromDSN guesses the database driver from a connection string.
func DriverFromDSN(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}
