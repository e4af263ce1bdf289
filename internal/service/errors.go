package service

import (
	"fmt"
	"strings"
)

// Entity names used in not-found errors, worded for direct client display.
const (
	EntityOrder    = "Order"
	EntityMenuItem = "Menu item"
)

// ValidationError carries every field-level violation found in a candidate.
// The operation is rejected as a whole; no field is partially applied.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NotFoundError names an entity and the id that did not resolve.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}
