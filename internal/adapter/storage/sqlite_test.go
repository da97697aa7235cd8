package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// The adapter tests run the real SQL against an in-memory SQLite database.
// The single connection keeps every statement on the same in-memory store.
var sqliteSchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE product_categories (
		product_id INTEGER NOT NULL,
		category_id INTEGER NOT NULL,
		PRIMARY KEY (product_id, category_id)
	)`,
	`CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		total TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price TEXT NOT NULL
	)`,
	`CREATE TABLE reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	t.Cleanup(func() { db.Close() })
	return db
}
