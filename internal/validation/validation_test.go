package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coffee-shop-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func validOrder() *models.OrderCandidate {
	return &models.OrderCandidate{
		CustomerName: ptr("John Doe"),
		Items: []models.OrderItemCandidate{
			{MenuItemID: ptr(1), Quantity: ptr(2)},
		},
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.OrderCandidate)
		wantErrs []string
	}{
		{
			name:     "valid order",
			mutate:   func(o *models.OrderCandidate) {},
			wantErrs: nil,
		},
		{
			name:     "missing customer name",
			mutate:   func(o *models.OrderCandidate) { o.CustomerName = nil },
			wantErrs: []string{"customer_name is required"},
		},
		{
			name:     "customer name too short",
			mutate:   func(o *models.OrderCandidate) { o.CustomerName = ptr("Ab") },
			wantErrs: []string{"Customer name must be between 3 and 50 characters"},
		},
		{
			name:     "missing items",
			mutate:   func(o *models.OrderCandidate) { o.Items = nil },
			wantErrs: []string{"items is required"},
		},
		{
			name:     "empty items",
			mutate:   func(o *models.OrderCandidate) { o.Items = []models.OrderItemCandidate{} },
			wantErrs: []string{"Order must contain at least one item"},
		},
		{
			name: "item missing menu_item_id",
			mutate: func(o *models.OrderCandidate) {
				o.Items = []models.OrderItemCandidate{{Quantity: ptr(1)}}
			},
			wantErrs: []string{"Item 0: menu_item_id is required"},
		},
		{
			name: "item missing quantity",
			mutate: func(o *models.OrderCandidate) {
				o.Items = []models.OrderItemCandidate{{MenuItemID: ptr(1)}}
			},
			wantErrs: []string{"Item 0: quantity is required"},
		},
		{
			name: "zero quantity is present but invalid",
			mutate: func(o *models.OrderCandidate) {
				o.Items = []models.OrderItemCandidate{{MenuItemID: ptr(1), Quantity: ptr(0)}}
			},
			wantErrs: []string{"Item 0: quantity must be a positive number and at least 1"},
		},
		{
			name: "second item is index-labeled",
			mutate: func(o *models.OrderCandidate) {
				o.Items = append(o.Items, models.OrderItemCandidate{MenuItemID: ptr(2)})
			},
			wantErrs: []string{"Item 1: quantity is required"},
		},
		{
			name:     "negative total_price",
			mutate:   func(o *models.OrderCandidate) { o.TotalPrice = ptr(-1.0) },
			wantErrs: []string{"total_price must be a non-negative number"},
		},
		{
			name:     "supplied total_price is allowed when well-formed",
			mutate:   func(o *models.OrderCandidate) { o.TotalPrice = ptr(123.45) },
			wantErrs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validOrder()
			tt.mutate(candidate)
			assert.Equal(t, tt.wantErrs, ValidateOrder(candidate))
		})
	}
}

func TestValidateOrder_CollectsAllViolations(t *testing.T) {
	errs := ValidateOrder(&models.OrderCandidate{})
	assert.Contains(t, errs, "customer_name is required")
	assert.Contains(t, errs, "items is required")
	assert.Len(t, errs, 2)
}

func validMenuItem() *models.MenuItemCandidate {
	return &models.MenuItemCandidate{
		Name:  ptr("Espresso"),
		Price: ptr(2.50),
	}
}

func TestValidateMenuItem(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.MenuItemCandidate)
		wantErrs []string
	}{
		{
			name:     "valid minimal item",
			mutate:   func(m *models.MenuItemCandidate) {},
			wantErrs: nil,
		},
		{
			name: "valid full item",
			mutate: func(m *models.MenuItemCandidate) {
				m.Description = ptr("Strong coffee")
				m.Size = ptr("Small")
				m.ExtraItems = []string{"Extra Shot"}
				m.Modifiers = []models.ModifierCandidate{
					{Name: ptr("Sugar"), Options: []string{"None", "High"}},
				}
				m.Promotion = &models.PromotionCandidate{Type: ptr("discount"), Amount: ptr(0.5)}
			},
			wantErrs: nil,
		},
		{
			name:     "missing name",
			mutate:   func(m *models.MenuItemCandidate) { m.Name = nil },
			wantErrs: []string{"name is required"},
		},
		{
			name:     "name too short",
			mutate:   func(m *models.MenuItemCandidate) { m.Name = ptr("Ab") },
			wantErrs: []string{"Name must be between 3 and 50 characters"},
		},
		{
			name: "description too long",
			mutate: func(m *models.MenuItemCandidate) {
				long := make([]byte, 101)
				for i := range long {
					long[i] = 'x'
				}
				m.Description = ptr(string(long))
			},
			wantErrs: []string{"Description must not exceed 100 characters"},
		},
		{
			name:     "missing price",
			mutate:   func(m *models.MenuItemCandidate) { m.Price = nil },
			wantErrs: []string{"price is required"},
		},
		{
			name:     "negative price",
			mutate:   func(m *models.MenuItemCandidate) { m.Price = ptr(-1.0) },
			wantErrs: []string{"Price must be a non-negative number"},
		},
		{
			name:     "zero price is valid",
			mutate:   func(m *models.MenuItemCandidate) { m.Price = ptr(0.0) },
			wantErrs: nil,
		},
		{
			name:     "invalid size",
			mutate:   func(m *models.MenuItemCandidate) { m.Size = ptr("Venti") },
			wantErrs: []string{"Size must be one of: Small, Medium, Large"},
		},
		{
			name: "too many extra items",
			mutate: func(m *models.MenuItemCandidate) {
				m.ExtraItems = []string{"a", "b", "c", "d", "e", "f"}
			},
			wantErrs: []string{"extraItems must not contain more than 5 entries"},
		},
		{
			name: "modifier without name or options",
			mutate: func(m *models.MenuItemCandidate) {
				m.Modifiers = []models.ModifierCandidate{{}}
			},
			wantErrs: []string{
				"Modifier 0: name is required",
				"Modifier 0: options must contain at least one entry",
			},
		},
		{
			name: "discount promotion without amount",
			mutate: func(m *models.MenuItemCandidate) {
				m.Promotion = &models.PromotionCandidate{Type: ptr("discount")}
			},
			wantErrs: []string{"Promotion amount is required for discount promotions"},
		},
		{
			name: "bogo promotion without description",
			mutate: func(m *models.MenuItemCandidate) {
				m.Promotion = &models.PromotionCandidate{Type: ptr("bogo")}
			},
			wantErrs: []string{"Promotion description is required for bogo promotions"},
		},
		{
			name: "valid bogo promotion",
			mutate: func(m *models.MenuItemCandidate) {
				m.Promotion = &models.PromotionCandidate{Type: ptr("bogo"), Description: ptr("Buy one get one")}
			},
			wantErrs: nil,
		},
		{
			name: "unknown promotion type",
			mutate: func(m *models.MenuItemCandidate) {
				m.Promotion = &models.PromotionCandidate{Type: ptr("flash-sale"), Amount: ptr(1.0)}
			},
			wantErrs: []string{"Promotion type must be one of: discount, bogo"},
		},
		{
			name: "missing promotion type",
			mutate: func(m *models.MenuItemCandidate) {
				m.Promotion = &models.PromotionCandidate{Amount: ptr(1.0)}
			},
			wantErrs: []string{"Promotion type must be one of: discount, bogo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validMenuItem()
			tt.mutate(candidate)
			assert.Equal(t, tt.wantErrs, ValidateMenuItem(candidate))
		})
	}
}

func TestValidateMenuItem_CollectsAllViolations(t *testing.T) {
	errs := ValidateMenuItem(&models.MenuItemCandidate{
		Name:  ptr("Ab"),
		Price: ptr(-1.0),
	})
	assert.Contains(t, errs, "Name must be between 3 and 50 characters")
	assert.Contains(t, errs, "Price must be a non-negative number")
	assert.Len(t, errs, 2)
}
