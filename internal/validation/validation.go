package validation

import (
	"fmt"

	"coffee-shop-api/internal/models"
)

// Validators are pure and store-free. They collect every violation instead
// of stopping at the first, so a client can fix a bad payload in one round
// trip. An empty slice means the candidate is valid.

const (
	nameMinLen        = 3
	nameMaxLen        = 50
	descriptionMaxLen = 100
	extraItemsMaxLen  = 5
)

// ValidateOrder checks an order candidate against the field-level rules.
func ValidateOrder(candidate *models.OrderCandidate) []string {
	var errs []string

	if candidate.CustomerName == nil {
		errs = append(errs, "customer_name is required")
	} else if l := len(*candidate.CustomerName); l < nameMinLen || l > nameMaxLen {
		errs = append(errs, "Customer name must be between 3 and 50 characters")
	}

	if candidate.Items == nil {
		errs = append(errs, "items is required")
	} else if len(candidate.Items) == 0 {
		errs = append(errs, "Order must contain at least one item")
	} else {
		for i, item := range candidate.Items {
			errs = append(errs, validateOrderItem(item, i)...)
		}
	}

	if candidate.TotalPrice != nil && *candidate.TotalPrice < 0 {
		errs = append(errs, "total_price must be a non-negative number")
	}

	return errs
}

func validateOrderItem(item models.OrderItemCandidate, index int) []string {
	var errs []string

	if item.MenuItemID == nil {
		errs = append(errs, fmt.Sprintf("Item %d: menu_item_id is required", index))
	}

	if item.Quantity == nil {
		errs = append(errs, fmt.Sprintf("Item %d: quantity is required", index))
	} else if *item.Quantity < 1 {
		errs = append(errs, fmt.Sprintf("Item %d: quantity must be a positive number and at least 1", index))
	}

	return errs
}

// ValidateMenuItem checks a menu item candidate against the field-level rules.
func ValidateMenuItem(candidate *models.MenuItemCandidate) []string {
	var errs []string

	if candidate.Name == nil {
		errs = append(errs, "name is required")
	} else if l := len(*candidate.Name); l < nameMinLen || l > nameMaxLen {
		errs = append(errs, "Name must be between 3 and 50 characters")
	}

	if candidate.Description != nil && len(*candidate.Description) > descriptionMaxLen {
		errs = append(errs, "Description must not exceed 100 characters")
	}

	if candidate.Price == nil {
		errs = append(errs, "price is required")
	} else if *candidate.Price < 0 {
		errs = append(errs, "Price must be a non-negative number")
	}

	if candidate.Size != nil {
		switch models.ItemSize(*candidate.Size) {
		case models.SizeSmall, models.SizeMedium, models.SizeLarge:
		default:
			errs = append(errs, "Size must be one of: Small, Medium, Large")
		}
	}

	if len(candidate.ExtraItems) > extraItemsMaxLen {
		errs = append(errs, "extraItems must not contain more than 5 entries")
	}

	for i, modifier := range candidate.Modifiers {
		errs = append(errs, validateModifier(modifier, i)...)
	}

	if candidate.Promotion != nil {
		errs = append(errs, validatePromotion(candidate.Promotion)...)
	}

	return errs
}

func validateModifier(modifier models.ModifierCandidate, index int) []string {
	var errs []string

	if modifier.Name == nil || *modifier.Name == "" {
		errs = append(errs, fmt.Sprintf("Modifier %d: name is required", index))
	}

	if len(modifier.Options) == 0 {
		errs = append(errs, fmt.Sprintf("Modifier %d: options must contain at least one entry", index))
	}

	return errs
}

func validatePromotion(promotion *models.PromotionCandidate) []string {
	if promotion.Type == nil {
		return []string{"Promotion type must be one of: discount, bogo"}
	}

	var errs []string
	switch models.PromotionType(*promotion.Type) {
	case models.PromotionDiscount:
		if promotion.Amount == nil {
			errs = append(errs, "Promotion amount is required for discount promotions")
		}
	case models.PromotionBogo:
		if promotion.Description == nil || *promotion.Description == "" {
			errs = append(errs, "Promotion description is required for bogo promotions")
		}
	default:
		errs = append(errs, "Promotion type must be one of: discount, bogo")
	}

	return errs
}
