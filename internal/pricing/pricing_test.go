package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop-api/internal/models"
)

func testCatalog() Catalog {
	return Snapshot([]models.MenuItem{
		{ID: 1, Name: "Espresso", Price: 2.50},
		{ID: 2, Name: "Cappuccino", Price: 3.50},
	})
}

func TestTotal(t *testing.T) {
	total, err := Total([]models.OrderItem{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	}, testCatalog())

	require.NoError(t, err)
	assert.Equal(t, 8.50, total)
}

func TestTotal_EmptyItems(t *testing.T) {
	total, err := Total(nil, testCatalog())

	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestTotal_MissingMenuItem(t *testing.T) {
	_, err := Total([]models.OrderItem{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 99, Quantity: 1},
	}, testCatalog())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 99, notFound.MenuItemID)
}

func TestTotal_NoFloatDrift(t *testing.T) {
	catalog := Snapshot([]models.MenuItem{{ID: 1, Price: 0.10}})

	total, err := Total([]models.OrderItem{{MenuItemID: 1, Quantity: 3}}, catalog)

	require.NoError(t, err)
	assert.Equal(t, 0.30, total)
}
