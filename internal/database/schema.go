package database

import (
	"context"
	"fmt"
)

// Schema statements for the postgres store backend. Ids come from identity
// columns, which are strictly increasing and never reused, matching the
// in-memory store contract.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		size TEXT NOT NULL DEFAULT '',
		extra_items JSONB,
		modifiers JSONB,
		promotion JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		customer_name TEXT NOT NULL,
		total_price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		menu_item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, position)
	)`,
}

// EnsureSchema creates the store tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	db.logger.Info("schema_ready", "startup", "Store tables are in place")
	return nil
}
