// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/models"
)

// claimRepository is the SQL implementation of [ClaimRepository].
//
// The "at most one open claim per item" rule lives in the partial unique
// index claims_one_open_per_item; the repository only translates its
// violation into [ErrItemAlreadyClaimed].
type claimRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewClaimRepository constructs a [ClaimRepository] backed by db.
func NewClaimRepository(db *DB, logger *logger.Logger) ClaimRepository {
	logger.Debug().Msg("creating claim repository")
	return &claimRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateClaim checks the item and inserts an open claim in one transaction.
func (r *claimRepository) CreateClaim(ctx context.Context, claim models.Claim) (models.Claim, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*claimRepository.CreateClaim").
		Int64("item_id", claim.ItemID).
		Int64("volunteer_id", claim.VolunteerID).
		Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	exists, err := itemExists(ctx, r.db, tx, claim.ItemID)
	if err != nil {
		log.Err(err).Msg("failed to check item existence")
		return models.Claim{}, err
	}
	if !exists {
		return models.Claim{}, ErrItemNotFound
	}

	claim.UpdatedAt = r.now()
	if claim.TimeCollected.IsZero() {
		claim.TimeCollected = claim.UpdatedAt
	}

	query, args, err := buildCreateClaimQuery(r.db.builder, claim)
	if err != nil {
		log.Err(err).Msg("error building query")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanClaim(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		class := r.db.classify(err)
		if class == UniqueViolation {
			log.Debug().Msg("item already has an open claim")
			return models.Claim{}, ErrItemAlreadyClaimed
		}
		if class == ForeignKeyViolation {
			return models.Claim{}, ErrItemNotFound
		}
		log.Err(err).Stringer("class", class).Msg("error inserting claim")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		class := r.db.classify(err)
		if class == UniqueViolation {
			return models.Claim{}, ErrItemAlreadyClaimed
		}
		log.Err(err).Msg("failed to commit transaction")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// GetClaim returns one claim by id.
func (r *claimRepository) GetClaim(ctx context.Context, claimID int64) (models.Claim, error) {
	claims, err := r.selectClaims(ctx, sq.Eq{"claim_id": claimID})
	if err != nil {
		return models.Claim{}, err
	}
	if len(claims) == 0 {
		return models.Claim{}, ErrClaimNotFound
	}
	return claims[0], nil
}

// MarkDelivered performs the open -> delivered transition with a
// conditional update. When nothing matched, the claim is looked up to tell
// a missing claim from one in a terminal state.
func (r *claimRepository) MarkDelivered(ctx context.Context, claimID int64, proofRef string) (models.Claim, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkDeliveredQuery(r.db.builder, claimID, proofRef, r.now())
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.MarkDelivered").Msg("error building query")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanClaim(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetClaim(ctx, claimID); getErr != nil {
			return models.Claim{}, getErr
		}
		return models.Claim{}, ErrClaimNotOpen
	}
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.MarkDelivered").Int64("claim_id", claimID).Msg("error updating claim")
		return models.Claim{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// ListClaimsByItem returns the claim history of an item.
func (r *claimRepository) ListClaimsByItem(ctx context.Context, itemID int64) ([]models.Claim, error) {
	return r.selectClaims(ctx, sq.Eq{"item_id": itemID})
}

func (r *claimRepository) selectClaims(ctx context.Context, where sq.Eq) ([]models.Claim, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectClaimsQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.selectClaims").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.selectClaims").Msg("failed to execute query for claims")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	claims := make([]models.Claim, 0, 4)
	for rows.Next() {
		claim, scanErr := scanClaim(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*claimRepository.selectClaims").Msg("failed to scan claim row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		claims = append(claims, claim)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*claimRepository.selectClaims").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return claims, nil
}

func scanClaim(row rowScanner) (models.Claim, error) {
	var c models.Claim
	err := row.Scan(
		&c.ClaimID,
		&c.ItemID,
		&c.VolunteerID,
		&c.TimeCollected,
		&c.ProofRef,
		&c.State,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
