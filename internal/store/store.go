package store

import (
	"context"
	"errors"

	"coffee-shop-api/internal/models"
)

// ErrNotFound is returned by store lookups for ids that were never assigned
// or have been removed.
var ErrNotFound = errors.New("record not found")

// MenuStore holds the catalog of menu items. Ids are assigned by Insert from
// a strictly increasing counter starting at 1 and are never reused within a
// process lifetime. There is no remove operation for catalog entries.
type MenuStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id int) (models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	Replace(ctx context.Context, id int, item models.MenuItem) (models.MenuItem, error)
}

// OrderStore holds customer orders, with the same id-assignment contract as
// MenuStore plus removal.
type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int) (models.Order, error)
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	Replace(ctx context.Context, id int, order models.Order) (models.Order, error)
	Remove(ctx context.Context, id int) error
}
