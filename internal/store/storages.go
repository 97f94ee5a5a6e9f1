// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/food-rescue/internal/config"
	"github.com/MKhiriev/food-rescue/internal/logger"
)

// Storages aggregates every persistence component used by the services.
type Storages struct {
	UserRepository   UserRepository
	ItemRepository   ItemRepository
	ClaimRepository  ClaimRepository
	ProofFileStorage ProofFileStorage

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := Connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	proofs, err := NewProofFileStorage(cfg.Files.ProofDir, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStoragesWithDB(db, proofs, log), nil
}

// NewStoragesWithDB builds the repositories on an already migrated db.
func NewStoragesWithDB(db *DB, proofs ProofFileStorage, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		ItemRepository:   NewItemRepository(db, log),
		ClaimRepository:  NewClaimRepository(db, log),
		ProofFileStorage: proofs,
		db:               db,
	}
}

// Connect opens the database selected by cfg.Driver.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverFromDSN(cfg.DSN)
	}

	switch driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Ping checks that the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

// Close releases the database pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
