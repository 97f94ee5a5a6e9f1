// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/food-rescue/models"
)

var (
	userColumns = []string{
		"user_id", "login", "password_hash",
		"is_donor", "is_volunteer", "is_recipient",
		"created_at",
	}

	itemColumns = []string{
		"item_id", "donor_id", "name", "quantity",
		"expiry_date", "location", "category", "created_at",
	}

	claimColumns = []string{
		"claim_id", "item_id", "volunteer_id", "time_collected",
		"proof_ref", "state", "created_at", "updated_at",
	}
)

// openClaimExists is true while an open claim references the item aliased "i".
var openClaimExists = fmt.Sprintf(
	"EXISTS (SELECT 1 FROM claims c WHERE c.item_id = i.item_id AND c.state = '%s')",
	models.ClaimOpen,
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ── users ────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("login", "password_hash", "is_donor", "is_volunteer", "is_recipient").
		Values(user.Login, user.PasswordHash, user.Roles.Donor, user.Roles.Volunteer, user.Roles.Recipient).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, userID int64, passwordHash string) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── items ────────────────────────────────────────────────────────────────────

func buildCreateItemQuery(b sq.StatementBuilderType, item models.InventoryItem) (string, []any, error) {
	return b.Insert(item.TableName()).
		Columns("donor_id", "name", "quantity", "expiry_date", "location", "category").
		Values(item.DonorID, item.Name, item.Quantity, item.ExpiryDate, item.Location, string(item.Category)).
		Suffix(returning(itemColumns)).
		ToSql()
}

// buildSelectItemsQuery selects items with the derived claimed flag, ordered
// by id. A non-nil itemID narrows the result to a single item.
func buildSelectItemsQuery(b sq.StatementBuilderType, filter models.ItemFilter, itemID *int64) (string, []any, error) {
	query := b.Select(prefixed("i", itemColumns)...).
		Column(openClaimExists + " AS claimed").
		From(models.InventoryItem{}.TableName() + " i")

	if itemID != nil {
		query = query.Where(sq.Eq{"i.item_id": *itemID})
	}
	if filter.OnlyAvailable {
		query = query.Where("NOT " + openClaimExists)
	}

	return query.OrderBy("i.item_id ASC").ToSql()
}

func buildItemExistsQuery(b sq.StatementBuilderType, itemID int64) (string, []any, error) {
	return b.Select("1").
		From(models.InventoryItem{}.TableName()).
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
}

// ── claims ───────────────────────────────────────────────────────────────────

func buildCreateClaimQuery(b sq.StatementBuilderType, claim models.Claim) (string, []any, error) {
	return b.Insert(claim.TableName()).
		Columns("item_id", "volunteer_id", "time_collected", "state", "updated_at").
		Values(claim.ItemID, claim.VolunteerID, claim.TimeCollected, string(models.ClaimOpen), claim.UpdatedAt).
		Suffix(returning(claimColumns)).
		ToSql()
}

func buildSelectClaimsQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(claimColumns...).
		From(models.Claim{}.TableName()).
		Where(where).
		OrderBy("claim_id ASC").
		ToSql()
}

// buildMarkDeliveredQuery only matches claims that are still open, so a
// concurrent second transition updates nothing.
func buildMarkDeliveredQuery(b sq.StatementBuilderType, claimID int64, proofRef string, now time.Time) (string, []any, error) {
	return b.Update(models.Claim{}.TableName()).
		Set("state", string(models.ClaimDelivered)).
		Set("proof_ref", proofRef).
		Set("updated_at", now).
		Where(sq.Eq{"claim_id": claimID, "state": string(models.ClaimOpen)}).
		Suffix(returning(claimColumns)).
		ToSql()
}
