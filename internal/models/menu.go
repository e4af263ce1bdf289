package models

// ItemSize is the serving size of a menu item.
type ItemSize string

const (
	SizeSmall  ItemSize = "Small"
	SizeMedium ItemSize = "Medium"
	SizeLarge  ItemSize = "Large"
)

// PromotionType distinguishes the supported promotion variants.
type PromotionType string

const (
	PromotionDiscount PromotionType = "discount"
	PromotionBogo     PromotionType = "bogo"
)

// Modifier is a named customization axis with a fixed set of options.
type Modifier struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Promotion is an optional discount or bundle rule attached to a menu item.
// Amount is set for discount promotions, Description for bogo.
type Promotion struct {
	Type        PromotionType `json:"type"`
	Amount      float64       `json:"amount,omitempty"`
	Description string        `json:"description,omitempty"`
}

// MenuItem is a catalog entry. The ID is assigned by the store on creation
// and preserved across wholesale replaces.
type MenuItem struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Size        ItemSize   `json:"size,omitempty"`
	ExtraItems  []string   `json:"extraItems,omitempty"`
	Modifiers   []Modifier `json:"modifiers,omitempty"`
	Promotion   *Promotion `json:"promotion,omitempty"`
}

// ModifierCandidate is an incoming modifier before validation. Pointer
// fields distinguish missing keys from present-but-empty values.
type ModifierCandidate struct {
	Name    *string  `json:"name"`
	Options []string `json:"options"`
}

// PromotionCandidate is an incoming promotion before validation.
type PromotionCandidate struct {
	Type        *string  `json:"type"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

// MenuItemCandidate is the request body for menu create/update.
type MenuItemCandidate struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       *float64            `json:"price"`
	Size        *string             `json:"size"`
	ExtraItems  []string            `json:"extraItems"`
	Modifiers   []ModifierCandidate `json:"modifiers"`
	Promotion   *PromotionCandidate `json:"promotion"`
}
