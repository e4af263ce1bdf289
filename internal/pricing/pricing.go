package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"coffee-shop-api/internal/models"
)

// Catalog is the read-only view of the menu the calculator prices against.
type Catalog interface {
	Get(id int) (models.MenuItem, bool)
}

// NotFoundError reports an order line referencing a menu item id that is
// absent from the catalog.
type NotFoundError struct {
	MenuItemID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("menu item with ID %d not found", e.MenuItemID)
}

// Snapshot indexes a catalog listing by id so pricing runs against a fixed
// view of the menu, independent of store mutations.
func Snapshot(items []models.MenuItem) Catalog {
	s := make(snapshot, len(items))
	for _, item := range items {
		s[item.ID] = item
	}
	return s
}

type snapshot map[int]models.MenuItem

func (s snapshot) Get(id int) (models.MenuItem, bool) {
	item, ok := s[id]
	return item, ok
}

// Total resolves each line against the catalog and sums quantity times unit
// price. It fails on the first missing menu item id; the caller must reject
// the whole order rather than partially price it. The accumulation runs on
// decimals so repeated float addition cannot drift the total.
func Total(items []models.OrderItem, catalog Catalog) (float64, error) {
	total := decimal.Zero
	for _, item := range items {
		menuItem, ok := catalog.Get(item.MenuItemID)
		if !ok {
			return 0, &NotFoundError{MenuItemID: item.MenuItemID}
		}
		line := decimal.NewFromFloat(menuItem.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64(), nil
}
