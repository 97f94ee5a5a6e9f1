// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself; every unexpected call fails

	err = Migrate(context.Background(), db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, DialectSQLite)
	if !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got: %v", err)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(context.Background(), db, "oracle")
	if !errors.Is(err, ErrUnknownDialect) {
		t.Fatalf("expected ErrUnknownDialect, got: %v", err)
	}
}

func TestMigrate_SQLiteSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "schema.db")+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		t.Fatalf("expected migrations to apply, got: %v", err)
	}
	// second run is a no-op
	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		t.Fatalf("expected idempotent migrations, got: %v", err)
	}

	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("exec %q: %v", query, err)
		}
	}

	mustExec(`INSERT INTO users (login, password_hash, is_volunteer) VALUES ('v1', 'h', 1)`)
	mustExec(`INSERT INTO items (donor_id, name, quantity, expiry_date, location, category)
		VALUES (1, 'Bread', 5, '2025-03-01', 'Main St', 'Grocer')`)
	mustExec(`INSERT INTO claims (item_id, volunteer_id, time_collected) VALUES (1, 1, CURRENT_TIMESTAMP)`)

	// a second open claim on the same item violates the partial unique index
	if _, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, volunteer_id, time_collected) VALUES (1, 1, CURRENT_TIMESTAMP)`); err == nil {
		t.Fatal("expected unique violation for a second open claim")
	}

	// once delivered, a new open claim is allowed
	mustExec(`UPDATE claims SET state = 'delivered' WHERE claim_id = 1`)
	mustExec(`INSERT INTO claims (item_id, volunteer_id, time_collected) VALUES (1, 1, CURRENT_TIMESTAMP)`)

	if _, err := db.ExecContext(ctx,
		`INSERT INTO items (donor_id, name, quantity, expiry_date, location, category)
		VALUES (1, 'Milk', 0, '2025-03-01', 'Main St', 'Grocer')`); err == nil {
		t.Fatal("expected check violation for zero quantity")
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, volunteer_id, time_collected) VALUES (99, 1, CURRENT_TIMESTAMP)`); err == nil {
		t.Fatal("expected foreign key violation for unknown item")
	}
}
