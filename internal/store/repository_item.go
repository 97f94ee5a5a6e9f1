// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/models"
)

// itemRepository is the SQL implementation of [ItemRepository].
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateItem inserts a donated item. Validation happens in the service
// layer; the table CHECK constraints are a second line.
func (r *itemRepository) CreateItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateItemQuery(r.db.builder, item)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error building query")
		return models.InventoryItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.InventoryItem
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&created.ItemID,
		&created.DonorID,
		&created.Name,
		&created.Quantity,
		&created.ExpiryDate,
		&created.Location,
		&created.Category,
		&created.CreatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").
			Int64("donor_id", item.DonorID).
			Stringer("class", r.db.classify(err)).
			Msg("error inserting item")
		return models.InventoryItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// GetItem returns one item with its claimed flag.
func (r *itemRepository) GetItem(ctx context.Context, itemID int64) (models.InventoryItem, error) {
	items, err := r.selectItems(ctx, models.ItemFilter{}, &itemID)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if len(items) == 0 {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return items[0], nil
}

// ListItems returns items ordered by id; filter.OnlyAvailable hides items
// with an open claim.
func (r *itemRepository) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.InventoryItem, error) {
	return r.selectItems(ctx, filter, nil)
}

func (r *itemRepository) selectItems(ctx context.Context, filter models.ItemFilter, itemID *int64) ([]models.InventoryItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsQuery(r.db.builder, filter, itemID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.selectItems").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.selectItems").Msg("failed to execute query for items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0, 16)
	for rows.Next() {
		var item models.InventoryItem
		scanErr := rows.Scan(
			&item.ItemID,
			&item.DonorID,
			&item.Name,
			&item.Quantity,
			&item.ExpiryDate,
			&item.Location,
			&item.Category,
			&item.CreatedAt,
			&item.Claimed,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*itemRepository.selectItems").Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*itemRepository.selectItems").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// itemExists reports whether itemID exists, reading through q so that it can
// run inside a transaction.
func itemExists(ctx context.Context, db *DB, q querier, itemID int64) (bool, error) {
	query, args, err := buildItemExistsQuery(db.builder, itemID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return true, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
